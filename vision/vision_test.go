package vision

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyMissingArtifactFallsBack(t *testing.T) {
	c := NewClassifier([]string{"/nonexistent/model.json"})
	got := c.Classify([]byte("not even an image"))

	if got.Category != "Other" {
		t.Errorf("Category = %q, want Other", got.Category)
	}
	if got.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", got.Confidence)
	}
	if len(got.AllPredictions) != 0 {
		t.Errorf("AllPredictions = %v, want empty", got.AllPredictions)
	}
	if !got.UsedFallback {
		t.Error("UsedFallback not set")
	}
}

func TestClassifyCorruptArtifactFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewClassifier([]string{path})
	got := c.Classify(testPNG(t))
	if !got.UsedFallback {
		t.Errorf("expected fallback for corrupt artifact, got %+v", got)
	}
}

func TestClassifyUndecodableImageFallsBack(t *testing.T) {
	c := NewClassifier([]string{writeTestModel(t)})
	got := c.Classify([]byte{0x00, 0x01, 0x02})
	if !got.UsedFallback {
		t.Errorf("expected fallback for undecodable image, got %+v", got)
	}
}

func TestClassifyWithTinyModel(t *testing.T) {
	c := NewClassifier([]string{writeTestModel(t)})
	got := c.Classify(testPNG(t))

	if got.UsedFallback {
		t.Fatalf("expected real classification, got fallback")
	}
	if len(got.AllPredictions) != 4 {
		t.Fatalf("AllPredictions = %d entries, want 4", len(got.AllPredictions))
	}
	sum := 0.0
	for _, p := range got.AllPredictions {
		sum += p.Probability
	}
	if sum < 0.95 || sum > 1.05 {
		t.Errorf("probabilities sum to %v, want ~1", sum)
	}
	found := false
	for _, class := range []string{"Water Clogging", "Road Damage", "Garbage", "Streetlight"} {
		if got.Category == class {
			found = true
		}
	}
	if !found {
		t.Errorf("Category = %q, not in the model label set", got.Category)
	}
}

// writeTestModel writes a single-layer model mapping the flattened
// input straight to 4 softmax outputs with zero weights, so every class
// gets probability 0.25.
func writeTestModel(t *testing.T) string {
	t.Helper()

	weights := make([][]float64, 4)
	for i := range weights {
		weights[i] = make([]float64, inputSize*inputSize*3)
	}
	model := modelFile{
		InputSize: inputSize,
		Layers: []denseLayer{
			{Weights: weights, Biases: []float64{0.1, 0, 0, 0}, Activation: "softmax"},
		},
	}
	data, err := json.Marshal(model)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
