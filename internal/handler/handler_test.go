package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/blacklist"
	"github.com/dkraev/safecheck/internal/history"
	"github.com/dkraev/safecheck/internal/middleware"
	"github.com/dkraev/safecheck/internal/models"
	"github.com/dkraev/safecheck/internal/phishing"
	"github.com/dkraev/safecheck/internal/urlcheck"
)

const testSecret = "test-secret-key"

type fakeReputation struct {
	matched bool
	err     error
	calls   int
}

func (f *fakeReputation) Query(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.matched, f.err
}

type fakeClassifier struct {
	ready bool
	label int
}

func (f *fakeClassifier) Ready() bool          { return f.ready }
func (f *fakeClassifier) Predict(_ string) int { return f.label }

type fakeDetector struct {
	result *models.ImageResult
	err    error
}

func (f *fakeDetector) Classify(_ []byte) (*models.ImageResult, error) {
	return f.result, f.err
}

type testDeps struct {
	reputation *fakeReputation
	classifier *fakeClassifier
	detector   *fakeDetector
	store      *history.Memory
}

func newTestHandler(deps *testDeps) *Handler {
	logger := zap.NewNop()

	if deps.reputation == nil {
		deps.reputation = &fakeReputation{}
	}
	if deps.classifier == nil {
		deps.classifier = &fakeClassifier{ready: true}
	}
	if deps.detector == nil {
		deps.detector = &fakeDetector{}
	}
	if deps.store == nil {
		deps.store = history.NewMemory()
	}

	bl := blacklist.NewMatcher(nil)
	urlEngine := urlcheck.NewEngine(bl, deps.reputation, deps.store, logger)
	phishingEngine := phishing.NewEngine(deps.classifier,
		urlcheck.NewEngine(bl, deps.reputation, nil, logger), logger)
	auth := middleware.NewAuthMiddleware(testSecret, logger)

	return NewHandler(urlEngine, phishingEngine, deps.detector, deps.store, auth, "", logger)
}

func createTestCookie(userID int64) *http.Cookie {
	id := strconv.FormatInt(userID, 10)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(id))

	return &http.Cookie{
		Name:  "user_id",
		Value: id + "." + hex.EncodeToString(mac.Sum(nil)),
	}
}
