// Package vision classifies issue photos with an externally trained
// model artifact. A missing or unreadable artifact is an expected
// condition: classification then degrades to a fixed fallback result
// instead of failing the pipeline.
package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sync"

	"github.com/apex/log"
	"golang.org/x/image/draw"

	"wefix/models"
)

// imageClasses is the fixed label set the model was trained on, in
// output-index order.
var imageClasses = []string{"Water Clogging", "Road Damage", "Garbage", "Streetlight"}

const (
	inputSize          = 224
	fallbackCategory   = "Other"
	fallbackConfidence = 0.5
)

// DefaultModelPaths are tried in order when no explicit paths are
// configured.
var DefaultModelPaths = []string{
	"model/model.json",
	"./model/model.json",
	"/var/lib/wefix/model/model.json",
}

// modelFile is the serialized dense network: flattened 224x224x3 input,
// a stack of fully connected layers, softmax output over imageClasses.
type modelFile struct {
	InputSize int          `json:"input_size"`
	Layers    []denseLayer `json:"layers"`
}

type denseLayer struct {
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
	Activation string      `json:"activation"`
}

// Classifier loads the model artifact lazily and caches the outcome,
// success or failure, for the life of the process.
type Classifier struct {
	paths []string

	loadOnce sync.Once
	model    *modelFile
}

// NewClassifier creates a classifier trying the given artifact paths in
// order. Empty paths fall back to DefaultModelPaths.
func NewClassifier(paths []string) *Classifier {
	if len(paths) == 0 {
		paths = DefaultModelPaths
	}
	return &Classifier{paths: paths}
}

// Classify scores an encoded image against the fixed label set. On any
// failure it returns the documented fallback result with UsedFallback
// set, never an error.
func (c *Classifier) Classify(imageData []byte) models.ImageAnalysis {
	model := c.loadModel()
	if model == nil {
		return fallbackResult()
	}

	input, err := preprocess(imageData)
	if err != nil {
		log.Warnf("Image decode failed, using fallback classification: %v", err)
		return fallbackResult()
	}

	probs, err := model.predict(input)
	if err != nil {
		log.Warnf("Inference failed, using fallback classification: %v", err)
		return fallbackResult()
	}

	maxIdx := 0
	for i, p := range probs {
		if p > probs[maxIdx] {
			maxIdx = i
		}
	}

	predictions := make([]models.Prediction, len(probs))
	for i, p := range probs {
		class := fallbackCategory
		if i < len(imageClasses) {
			class = imageClasses[i]
		}
		predictions[i] = models.Prediction{Class: class, Probability: round2(p)}
	}

	category := fallbackCategory
	if maxIdx < len(imageClasses) {
		category = imageClasses[maxIdx]
	}

	return models.ImageAnalysis{
		Category:       category,
		Confidence:     round2(probs[maxIdx]),
		AllPredictions: predictions,
	}
}

func fallbackResult() models.ImageAnalysis {
	return models.ImageAnalysis{
		Category:     fallbackCategory,
		Confidence:   fallbackConfidence,
		UsedFallback: true,
	}
}

// loadModel tries each configured path once and remembers the result.
func (c *Classifier) loadModel() *modelFile {
	c.loadOnce.Do(func() {
		for _, path := range c.paths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var model modelFile
			if err := json.Unmarshal(data, &model); err != nil {
				log.Warnf("Model artifact at %s is not parseable: %v", path, err)
				continue
			}
			if len(model.Layers) == 0 {
				log.Warnf("Model artifact at %s has no layers", path)
				continue
			}
			log.Infof("Loaded classification model from %s", path)
			c.model = &model
			return
		}
		log.Warn("Model artifact not found at any configured path, image classification will use fallback")
	})
	return c.model
}

// preprocess decodes, resizes to the model input size and normalizes
// pixel channels to [0, 1].
func preprocess(imageData []byte) ([]float64, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.NearestNeighbor.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	input := make([]float64, 0, inputSize*inputSize*3)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			input = append(input,
				float64(r>>8)/255.0,
				float64(g>>8)/255.0,
				float64(b>>8)/255.0)
		}
	}
	return input, nil
}

// predict runs the forward pass through the dense layers.
func (m *modelFile) predict(input []float64) ([]float64, error) {
	activations := input
	for i, layer := range m.Layers {
		if len(layer.Weights) == 0 {
			return nil, fmt.Errorf("layer %d has no weights", i)
		}
		if len(layer.Biases) != len(layer.Weights) {
			return nil, fmt.Errorf("layer %d has %d biases for %d units", i, len(layer.Biases), len(layer.Weights))
		}
		out := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			if len(row) != len(activations) {
				return nil, fmt.Errorf("layer %d expects %d inputs, got %d", i, len(row), len(activations))
			}
			sum := layer.Biases[j]
			for k, w := range row {
				sum += w * activations[k]
			}
			out[j] = sum
		}
		switch layer.Activation {
		case "relu":
			for j := range out {
				if out[j] < 0 {
					out[j] = 0
				}
			}
		case "softmax":
			out = softmax(out)
		}
		activations = out
	}
	if len(activations) != len(imageClasses) {
		return nil, fmt.Errorf("model output size %d does not match %d classes", len(activations), len(imageClasses))
	}
	return activations, nil
}

func softmax(values []float64) []float64 {
	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	sum := 0.0
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
