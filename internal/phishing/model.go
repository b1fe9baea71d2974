package phishing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
)

// TextModel is a multinomial Naive Bayes classifier over a bag-of-words
// representation, loaded from a JSON artifact exported at training time.
// Class 1 is spam/phishing, class 0 is safe.
type TextModel struct {
	path string

	mu             sync.RWMutex
	vocabulary     map[string]int
	classLogPrior  []float64
	featureLogProb [][]float64
	loaded         bool
}

type textModelArtifact struct {
	Vocabulary     map[string]int `json:"vocabulary"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
}

func NewTextModel(path string) *TextModel {
	return &TextModel{path: path}
}

// Load reads and validates the model artifact. It may be called once at
// startup; a failure leaves the model not ready instead of crashing.
func (m *TextModel) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read model artifact: %w", err)
	}

	var artifact textModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return fmt.Errorf("parse model artifact: %w", err)
	}

	if len(artifact.ClassLogPrior) != 2 || len(artifact.FeatureLogProb) != 2 {
		return fmt.Errorf("model artifact must describe exactly two classes")
	}
	vocabSize := len(artifact.Vocabulary)
	for class, probs := range artifact.FeatureLogProb {
		if len(probs) != vocabSize {
			return fmt.Errorf("class %d has %d feature weights, vocabulary has %d entries",
				class, len(probs), vocabSize)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.vocabulary = artifact.Vocabulary
	m.classLogPrior = artifact.ClassLogPrior
	m.featureLogProb = artifact.FeatureLogProb
	m.loaded = true

	return nil
}

func (m *TextModel) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Predict returns 1 when the text scores as spam/phishing, 0 otherwise.
// Tokens outside the vocabulary are ignored.
func (m *TextModel) Predict(text string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.loaded {
		return 0
	}

	scores := []float64{m.classLogPrior[0], m.classLogPrior[1]}

	for _, token := range tokenize(text) {
		idx, ok := m.vocabulary[token]
		if !ok {
			continue
		}
		scores[0] += m.featureLogProb[0][idx]
		scores[1] += m.featureLogProb[1][idx]
	}

	if scores[1] > scores[0] {
		return 1
	}
	return 0
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
