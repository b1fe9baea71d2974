package phishing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/blacklist"
	"github.com/dkraev/safecheck/internal/models"
	"github.com/dkraev/safecheck/internal/urlcheck"
)

type fakeClassifier struct {
	ready bool
	label int
}

func (f *fakeClassifier) Ready() bool          { return f.ready }
func (f *fakeClassifier) Predict(_ string) int { return f.label }

type fakeReputation struct {
	matched bool
	err     error
}

func (f *fakeReputation) Query(_ context.Context, _ string) (bool, error) {
	return f.matched, f.err
}

func newTestEngine(classifier TextClassifier, rep urlcheck.ReputationClient) *Engine {
	logger := zap.NewNop()
	urlEngine := urlcheck.NewEngine(blacklist.NewMatcher(nil), rep, nil, logger)
	return NewEngine(classifier, urlEngine, logger)
}

func TestEngineEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		label      int
		repMatched bool
		want       models.Verdict
		wantURLs   int
		wantUnsafe bool
	}{
		{
			name: "plain message is safe",
			text: "Lunch at noon tomorrow?",
			want: models.VerdictSafeMessage,
		},
		{
			name:  "classifier alone flags the message",
			text:  "Totally innocent looking text",
			label: 1,
			want:  models.VerdictPhishing,
		},
		{
			name: "two indicator phrases flag without classifier signal",
			text: "Urgent: verify your account now",
			want: models.VerdictPhishing,
		},
		{
			name: "one indicator phrase is not enough",
			text: "Please login when you have a minute",
			want: models.VerdictSafeMessage,
		},
		{
			name: "indicator phrases are case-insensitive",
			text: "SECURITY ALERT detected UNUSUAL ACTIVITY",
			want: models.VerdictPhishing,
		},
		{
			name:       "blacklisted embedded url flags the message",
			text:       "check this out http://malware-test.net/x",
			want:       models.VerdictPhishing,
			wantURLs:   1,
			wantUnsafe: true,
		},
		{
			name:       "reputation match on embedded url flags the message",
			text:       "see https://example.com/offer",
			repMatched: true,
			want:       models.VerdictPhishing,
			wantURLs:   1,
			wantUnsafe: true,
		},
		{
			name:     "safe embedded url stays safe",
			text:     "docs at https://example.com/manual",
			want:     models.VerdictSafeMessage,
			wantURLs: 1,
		},
		{
			name:     "spec end-to-end example",
			text:     "Urgent: verify your account, click http://phishing-site.com",
			want:     models.VerdictPhishing,
			wantURLs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(
				&fakeClassifier{ready: true, label: tt.label},
				&fakeReputation{matched: tt.repMatched},
			)

			verdict, findings, err := engine.Evaluate(context.Background(), tt.text)
			require.NoError(t, err)

			assert.Equal(t, tt.want, verdict)
			assert.Len(t, findings, tt.wantURLs)

			if tt.wantUnsafe {
				require.NotEmpty(t, findings)
				assert.True(t, findings[0].Status.Unsafe())
			}
		})
	}
}

func TestEngineEvaluateLookupFailureIsNotUnsafe(t *testing.T) {
	engine := newTestEngine(
		&fakeClassifier{ready: true},
		&fakeReputation{err: context.DeadlineExceeded},
	)

	verdict, findings, err := engine.Evaluate(context.Background(), "docs at https://example.com/manual")
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, models.VerdictLookupFailed, findings[0].Status)
	assert.Equal(t, models.VerdictSafeMessage, verdict,
		"a failed lookup is inconclusive and must not flag the message")
}

func TestEngineEvaluateModelNotLoaded(t *testing.T) {
	engine := newTestEngine(&fakeClassifier{ready: false}, &fakeReputation{})

	_, _, err := engine.Evaluate(context.Background(), "any text")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDependencyUnavailable)
}

func TestEngineEvaluateConfigurationErrorPropagates(t *testing.T) {
	engine := newTestEngine(
		&fakeClassifier{ready: true},
		&fakeReputation{err: models.ErrConfiguration},
	)

	_, _, err := engine.Evaluate(context.Background(), "see https://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestURLExtraction(t *testing.T) {
	engine := newTestEngine(&fakeClassifier{ready: true}, &fakeReputation{})

	text := "first http://a.example/x then https://b.example/y?q=1 and no more"
	_, findings, err := engine.Evaluate(context.Background(), text)
	require.NoError(t, err)

	require.Len(t, findings, 2)
	assert.Equal(t, "http://a.example/x", findings[0].URL)
	assert.Equal(t, "https://b.example/y?q=1", findings[1].URL)
}
