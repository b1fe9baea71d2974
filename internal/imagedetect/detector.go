// Package imagedetect tells AI-generated images apart from real photographs
// using a pre-trained two-class model applied to a normalized 224x224 tensor.
package imagedetect

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/dkraev/safecheck/internal/models"
)

const (
	inputSize   = 224
	numChannels = 3

	labelReal = "real"
	labelAI   = "ai_generated"
)

// Preprocessing constants must match the ones the model was trained with.
var (
	channelMean = [numChannels]float32{0.485, 0.456, 0.406}
	channelStd  = [numChannels]float32{0.229, 0.224, 0.225}
)

// artifact is the on-disk weight format: a linear head over the flattened
// CHW tensor producing one logit per class (0 = real, 1 = AI-generated).
type artifact struct {
	Weights [2][]float32
	Bias    [2]float32
}

type Detector struct {
	path string

	mu      sync.RWMutex
	weights *artifact
}

func NewDetector(path string) *Detector {
	return &Detector{path: path}
}

// Load reads the weight file once at startup. On failure the detector stays
// not ready and Classify reports the feature as unavailable.
func (d *Detector) Load() error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("open model weights: %w", err)
	}
	defer f.Close()

	var w artifact
	if err := gob.NewDecoder(f).Decode(&w); err != nil {
		return fmt.Errorf("decode model weights: %w", err)
	}

	want := numChannels * inputSize * inputSize
	for class, row := range w.Weights {
		if len(row) != want {
			return fmt.Errorf("class %d has %d weights, expected %d", class, len(row), want)
		}
	}

	d.mu.Lock()
	d.weights = &w
	d.mu.Unlock()

	return nil
}

func (d *Detector) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.weights != nil
}

// Classify runs the full pipeline on raw image bytes: decode, resize,
// normalize, forward pass, softmax. Any failure comes back as a structured
// error, never a panic.
func (d *Detector) Classify(imageBytes []byte) (result *models.ImageResult, err error) {
	d.mu.RLock()
	w := d.weights
	d.mu.RUnlock()

	if w == nil {
		return nil, fmt.Errorf("model not loaded: %w", models.ErrDependencyUnavailable)
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("inference panic: %v: %w", r, models.ErrInternal)
		}
	}()

	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w: %w", models.ErrInvalidInput, err)
	}

	tensor := preprocess(img)

	var logits [2]float64
	for class := 0; class < 2; class++ {
		sum := float64(w.Bias[class])
		row := w.Weights[class]
		for i, v := range tensor {
			sum += float64(row[i]) * float64(v)
		}
		logits[class] = sum
	}

	probReal, probAI := softmax2(logits[0], logits[1])

	confReal := probReal * 100
	confAI := probAI * 100

	prediction := labelReal
	confidence := confReal
	if confAI > confReal {
		prediction = labelAI
		confidence = confAI
	}

	return &models.ImageResult{
		Prediction: prediction,
		Confidence: confidence,
		Probabilities: models.ImageProbabilities{
			Real:        confReal,
			AIGenerated: confAI,
		},
	}, nil
}

// preprocess converts the image to a normalized CHW float tensor, resized to
// 224x224 with bilinear interpolation.
func preprocess(img image.Image) []float32 {
	resized := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	tensor := make([]float32, numChannels*inputSize*inputSize)
	plane := inputSize * inputSize

	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			px := [numChannels]float32{
				float32(r) / 65535,
				float32(g) / 65535,
				float32(b) / 65535,
			}
			for c := 0; c < numChannels; c++ {
				tensor[c*plane+y*inputSize+x] = (px[c] - channelMean[c]) / channelStd[c]
			}
		}
	}

	return tensor
}

func softmax2(a, b float64) (float64, float64) {
	m := math.Max(a, b)
	ea := math.Exp(a - m)
	eb := math.Exp(b - m)
	return ea / (ea + eb), eb / (ea + eb)
}
