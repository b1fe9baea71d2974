// Package phishing classifies free text as phishing/spam by combining a
// statistical text classifier, keyword rules and per-URL safety verdicts.
package phishing

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/models"
	"github.com/dkraev/safecheck/internal/urlcheck"
)

// IndicatorPhrases are the rule-based phishing signals. Two or more hits in
// one message trigger the phishing verdict on their own.
var IndicatorPhrases = []string{
	"verify",
	"suspend",
	"urgent",
	"security alert",
	"unusual activity",
	"login",
	"click",
	"confirm",
}

const ruleHitThreshold = 2

var urlPattern = regexp.MustCompile(`https?://\S+`)

// TextClassifier is the adapter contract over the pre-trained spam model.
type TextClassifier interface {
	Ready() bool
	Predict(text string) int
}

type Engine struct {
	classifier TextClassifier
	urlEngine  *urlcheck.Engine
	indicators *ahocorasick.Matcher
	logger     *zap.Logger
}

func NewEngine(classifier TextClassifier, urlEngine *urlcheck.Engine, logger *zap.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		urlEngine:  urlEngine,
		indicators: ahocorasick.NewStringMatcher(IndicatorPhrases),
		logger:     logger,
	}
}

// Evaluate produces the message verdict plus a sub-verdict for every URL
// found in the text. The classifier, the keyword rules and the URL pipeline
// each suffice on their own to flag the message.
func (e *Engine) Evaluate(ctx context.Context, text string) (models.Verdict, []models.URLFinding, error) {
	if !e.classifier.Ready() {
		return "", nil, fmt.Errorf("text classifier not loaded: %w", models.ErrDependencyUnavailable)
	}

	spamLike := e.classifier.Predict(text)
	ruleHits := len(e.indicators.Match([]byte(strings.ToLower(text))))

	findings := make([]models.URLFinding, 0)
	anyUnsafe := false
	for _, u := range urlPattern.FindAllString(text, -1) {
		verdict, err := e.urlEngine.Evaluate(ctx, u)
		if err != nil {
			return "", nil, err
		}
		if verdict.Unsafe() {
			anyUnsafe = true
		}
		findings = append(findings, models.URLFinding{URL: u, Status: verdict})
	}

	verdict := models.VerdictSafeMessage
	if spamLike == 1 || ruleHits >= ruleHitThreshold || anyUnsafe {
		verdict = models.VerdictPhishing
	}

	e.logger.Debug("Phishing evaluation",
		zap.Int("spamLike", spamLike),
		zap.Int("ruleHits", ruleHits),
		zap.Int("urls", len(findings)),
		zap.String("verdict", string(verdict)))

	return verdict, findings, nil
}
