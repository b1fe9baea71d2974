package models

import (
	"errors"
	"time"
)

// Verdict is the final label produced by an evaluation pipeline.
type Verdict string

const (
	VerdictSafe         Verdict = "Safe"
	VerdictBlacklisted  Verdict = "Blacklisted URL"
	VerdictMalicious    Verdict = "Malicious (Google Safe Browsing)"
	VerdictInvalidURL   Verdict = "Invalid URL"
	VerdictLookupFailed Verdict = "Lookup Failed"
	VerdictPhishing     Verdict = "Phishing / Spam"
	VerdictSafeMessage  Verdict = "Safe Message"
)

// Unsafe reports whether the verdict is positive evidence of a malicious URL.
// Lookup failures and malformed input are inconclusive, not unsafe.
func (v Verdict) Unsafe() bool {
	return v == VerdictBlacklisted || v == VerdictMalicious
}

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrConfiguration         = errors.New("configuration error")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInternal              = errors.New("internal failure")
)

// URLCheck is one persisted history row.
type URLCheck struct {
	ID          int64     `db:"id" json:"id"`
	URL         string    `db:"url" json:"url"`
	Result      Verdict   `db:"result" json:"result"`
	CheckedTime time.Time `db:"checked_time" json:"checked_time"`
	UserID      int64     `db:"user_id" json:"user_id"`
}

type URLCheckRequest struct {
	URL string `json:"url"`
}

type URLCheckResponse struct {
	URL    string  `json:"url"`
	Result Verdict `json:"result"`
}

type PhishingCheckRequest struct {
	Message string `json:"message"`
}

// URLFinding is the sub-verdict for one URL extracted from a message.
type URLFinding struct {
	URL    string  `json:"url"`
	Status Verdict `json:"status"`
}

type PhishingCheckResponse struct {
	Result     Verdict      `json:"result"`
	URLResults []URLFinding `json:"url_results"`
}

type ImageProbabilities struct {
	Real        float64 `json:"real"`
	AIGenerated float64 `json:"ai_generated"`
}

type ImageResult struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities ImageProbabilities `json:"probabilities"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
