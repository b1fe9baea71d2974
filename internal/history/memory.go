package history

import (
	"context"
	"sync"
	"time"

	"github.com/dkraev/safecheck/internal/models"
)

// Memory is an in-process Store used when no database DSN is configured.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	checks []models.URLCheck
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) Append(_ context.Context, check models.URLCheck) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	check.ID = m.nextID
	m.nextID++
	check.CheckedTime = time.Now().UTC()
	m.checks = append(m.checks, check)

	return check.ID, nil
}

func (m *Memory) ListByUser(_ context.Context, userID int64) ([]models.URLCheck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.URLCheck, 0)
	for _, c := range m.checks {
		if c.UserID == userID {
			result = append(result, c)
		}
	}

	return result, nil
}

func (m *Memory) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	toDelete := make(map[int64]bool, len(ids))
	for _, id := range ids {
		toDelete[id] = true
	}

	kept := m.checks[:0]
	var deleted int64
	for _, c := range m.checks {
		if toDelete[c.ID] {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	m.checks = kept

	return deleted, nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

func (m *Memory) Close() {}
