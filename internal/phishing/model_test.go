package phishing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, artifact textModelArtifact) string {
	t.Helper()

	data, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func spamArtifact() textModelArtifact {
	// Tiny vocabulary where "prize" and "winner" lean heavily towards class 1
	// and "meeting" towards class 0.
	return textModelArtifact{
		Vocabulary: map[string]int{
			"prize":   0,
			"winner":  1,
			"meeting": 2,
		},
		ClassLogPrior: []float64{-0.5, -0.9},
		FeatureLogProb: [][]float64{
			{-5.0, -5.0, -0.5},
			{-0.5, -0.5, -5.0},
		},
	}
}

func TestTextModelLoadAndPredict(t *testing.T) {
	model := NewTextModel(writeArtifact(t, spamArtifact()))

	require.NoError(t, model.Load())
	assert.True(t, model.Ready())

	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "spammy tokens score as spam",
			text: "You are a WINNER, claim your prize",
			want: 1,
		},
		{
			name: "ordinary tokens score as safe",
			text: "meeting moved to Monday",
			want: 0,
		},
		{
			name: "unknown tokens fall back to the prior",
			text: "qwerty asdfgh",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Predict(tt.text))
		})
	}
}

func TestTextModelLoadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		model := NewTextModel(filepath.Join(t.TempDir(), "absent.json"))

		require.Error(t, model.Load())
		assert.False(t, model.Ready())
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		model := NewTextModel(path)

		require.Error(t, model.Load())
		assert.False(t, model.Ready())
	})

	t.Run("wrong class count", func(t *testing.T) {
		artifact := spamArtifact()
		artifact.ClassLogPrior = []float64{-0.5}

		model := NewTextModel(writeArtifact(t, artifact))

		require.Error(t, model.Load())
		assert.False(t, model.Ready())
	})

	t.Run("feature row does not match vocabulary", func(t *testing.T) {
		artifact := spamArtifact()
		artifact.FeatureLogProb[1] = []float64{-0.5}

		model := NewTextModel(writeArtifact(t, artifact))

		require.Error(t, model.Load())
		assert.False(t, model.Ready())
	})
}

func TestTextModelPredictNotLoaded(t *testing.T) {
	model := NewTextModel("absent.json")

	assert.Equal(t, 0, model.Predict("anything"), "an unloaded model must not flag text")
}
