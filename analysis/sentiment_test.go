package analysis

import "testing"

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "negative keywords win",
			text:           "this is terrible and I am frustrated",
			wantLabel:      SentimentNegative,
			wantConfidence: 0.4,
		},
		{
			name:           "positive keywords win",
			text:           "great work, thank you, very helpful",
			wantLabel:      SentimentPositive,
			wantConfidence: 0.6,
		},
		{
			name:           "no keywords is neutral at the fixed constant",
			text:           "the lamp post on the corner",
			wantLabel:      SentimentNeutral,
			wantConfidence: 0.5,
		},
		{
			name:           "equal counts stay neutral",
			text:           "good but also bad",
			wantLabel:      SentimentNeutral,
			wantConfidence: 0.5,
		},
		{
			name:           "empty input is neutral at zero",
			text:           "",
			wantLabel:      SentimentNeutral,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.text)
			if got.Label != tt.wantLabel {
				t.Errorf("AnalyzeSentiment(%q).Label = %q, want %q", tt.text, got.Label, tt.wantLabel)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("AnalyzeSentiment(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConfidence)
			}
		})
	}
}
