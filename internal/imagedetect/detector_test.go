package imagedetect

import (
	"bytes"
	"encoding/gob"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkraev/safecheck/internal/models"
)

func writeWeights(t *testing.T, w artifact) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "weights.gob")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, gob.NewEncoder(f).Encode(w))

	return path
}

// zeroWeights produces a model whose verdict depends only on the bias, which
// makes the expected probabilities exact.
func zeroWeights(biasReal, biasAI float32) artifact {
	size := numChannels * inputSize * inputSize
	return artifact{
		Weights: [2][]float32{make([]float32, size), make([]float32, size)},
		Bias:    [2]float32{biasReal, biasAI},
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 50, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 8), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestDetectorClassify(t *testing.T) {
	tests := []struct {
		name           string
		biasReal       float32
		biasAI         float32
		wantPrediction string
	}{
		{
			name:           "bias towards ai class",
			biasReal:       0,
			biasAI:         2,
			wantPrediction: "ai_generated",
		},
		{
			name:           "bias towards real class",
			biasReal:       2,
			biasAI:         0,
			wantPrediction: "real",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewDetector(writeWeights(t, zeroWeights(tt.biasReal, tt.biasAI)))
			require.NoError(t, detector.Load())
			require.True(t, detector.Ready())

			result, err := detector.Classify(testPNG(t))
			require.NoError(t, err)

			assert.Equal(t, tt.wantPrediction, result.Prediction)
			assert.InDelta(t, 100,
				result.Probabilities.Real+result.Probabilities.AIGenerated, 1e-6,
				"class percentages must sum to 100")
			assert.Greater(t, result.Confidence, 50.0)
			assert.InDelta(t, result.Confidence,
				max(result.Probabilities.Real, result.Probabilities.AIGenerated), 1e-9,
				"confidence must be the winning class percentage")
		})
	}
}

func TestDetectorClassifyDeterministic(t *testing.T) {
	detector := NewDetector(writeWeights(t, zeroWeights(0, 1)))
	require.NoError(t, detector.Load())

	img := testPNG(t)

	first, err := detector.Classify(img)
	require.NoError(t, err)
	second, err := detector.Classify(img)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDetectorNotLoaded(t *testing.T) {
	detector := NewDetector(filepath.Join(t.TempDir(), "absent.gob"))

	require.Error(t, detector.Load())
	assert.False(t, detector.Ready())

	_, err := detector.Classify(testPNG(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDependencyUnavailable)
}

func TestDetectorCorruptImage(t *testing.T) {
	detector := NewDetector(writeWeights(t, zeroWeights(0, 1)))
	require.NoError(t, detector.Load())

	_, err := detector.Classify([]byte("definitely not an image"))

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestDetectorLoadRejectsWrongShape(t *testing.T) {
	w := zeroWeights(0, 1)
	w.Weights[1] = w.Weights[1][:10]

	detector := NewDetector(writeWeights(t, w))

	require.Error(t, detector.Load())
	assert.False(t, detector.Ready())
}
