// Package history persists URL-check verdicts per user.
package history

import (
	"context"

	"github.com/dkraev/safecheck/internal/models"
)

// Store is the history persistence contract. Records are append-only;
// deletion exists only for out-of-band maintenance.
type Store interface {
	// Append stores the check and returns its assigned id. The store sets
	// the checked time at insertion.
	Append(ctx context.Context, check models.URLCheck) (int64, error)

	// ListByUser returns the user's checks in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]models.URLCheck, error)

	// DeleteByIDs removes the given records and returns how many existed.
	// Missing ids are skipped silently.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	Ping(ctx context.Context) error
	Close()
}
