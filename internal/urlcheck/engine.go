// Package urlcheck decides whether a URL is safe to visit by combining
// syntactic validation, a local blacklist and a remote reputation lookup.
package urlcheck

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/blacklist"
	"github.com/dkraev/safecheck/internal/history"
	"github.com/dkraev/safecheck/internal/models"
)

// ReputationClient reports whether a URL matches a known threat.
type ReputationClient interface {
	Query(ctx context.Context, url string) (bool, error)
}

type Engine struct {
	blacklist  *blacklist.Matcher
	reputation ReputationClient
	store      history.Store
	logger     *zap.Logger
}

// NewEngine builds the verdict pipeline. The store may be nil; Evaluate never
// touches it and CheckAndRecord degrades to a plain evaluation.
func NewEngine(bl *blacklist.Matcher, reputation ReputationClient, store history.Store, logger *zap.Logger) *Engine {
	return &Engine{
		blacklist:  bl,
		reputation: reputation,
		store:      store,
		logger:     logger,
	}
}

// Evaluate runs the pipeline and always produces a verdict. The returned
// error is non-nil only for a configuration problem (missing API key), which
// the caller must surface instead of a verdict.
func (e *Engine) Evaluate(ctx context.Context, rawURL string) (models.Verdict, error) {
	if !validURL(rawURL) {
		return models.VerdictInvalidURL, nil
	}

	if e.blacklist.Contains(rawURL) {
		return models.VerdictBlacklisted, nil
	}

	matched, err := e.reputation.Query(ctx, rawURL)
	if err != nil {
		if errors.Is(err, models.ErrConfiguration) {
			return "", err
		}
		e.logger.Warn("Reputation lookup failed",
			zap.String("url", rawURL),
			zap.Error(err))
		return models.VerdictLookupFailed, nil
	}

	if matched {
		return models.VerdictMalicious, nil
	}

	return models.VerdictSafe, nil
}

// CheckAndRecord evaluates the URL and appends the verdict to the caller's
// history. A persistence failure is logged but does not suppress the verdict.
func (e *Engine) CheckAndRecord(ctx context.Context, rawURL string, userID int64) (models.Verdict, error) {
	verdict, err := e.Evaluate(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if e.store != nil {
		_, err := e.store.Append(ctx, models.URLCheck{
			URL:    rawURL,
			Result: verdict,
			UserID: userID,
		})
		if err != nil {
			e.logger.Error("Failed to record URL check",
				zap.String("url", rawURL),
				zap.Int64("userID", userID),
				zap.Error(err))
		}
	}

	return verdict, nil
}

func validURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
