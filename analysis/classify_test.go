package analysis

import (
	"testing"
)

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "three distinct road keywords cap at full confidence",
			text:           "A pothole and a crack in the asphalt",
			wantCategory:   "Road Damage",
			wantConfidence: 1,
		},
		{
			name:           "single water keyword",
			text:           "there is a leak near my house",
			wantCategory:   "Water Clogging",
			wantConfidence: 0.33,
		},
		{
			name:           "two garbage keywords",
			text:           "trash and litter everywhere",
			wantCategory:   "Garbage",
			wantConfidence: 0.67,
		},
		{
			name:           "no keyword evidence falls back to Other at 0.1",
			text:           "something odd happened here yesterday",
			wantCategory:   CategoryOther,
			wantConfidence: 0.1,
		},
		{
			name:           "empty input returns Other at exactly 0",
			text:           "",
			wantCategory:   CategoryOther,
			wantConfidence: 0,
		},
		{
			name:           "tie goes to the first declared category",
			text:           "water on the road",
			wantCategory:   "Water Clogging",
			wantConfidence: 0.33,
		},
		{
			name:           "matching is case insensitive",
			text:           "GARBAGE DUMP near the school",
			wantCategory:   "Garbage",
			wantConfidence: 0.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyText(tt.text)
			if got.Category != tt.wantCategory {
				t.Errorf("ClassifyText(%q).Category = %q, want %q", tt.text, got.Category, tt.wantCategory)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("ClassifyText(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyTextScores(t *testing.T) {
	got := ClassifyText("pothole in the road with a big crack")
	if got.Scores["Road Damage"] != 3 {
		t.Errorf("Road Damage score = %d, want 3", got.Scores["Road Damage"])
	}
	if got.Scores["Garbage"] != 0 {
		t.Errorf("Garbage score = %d, want 0", got.Scores["Garbage"])
	}
	if _, ok := got.Scores[CategoryOther]; ok {
		t.Error("fallback category must not carry a score")
	}
}
