package analysis

import "testing"

func TestDetectSpam(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantSpam       bool
		wantConfidence float64
		wantReason     string
	}{
		{
			name:           "short text is flagged before any pattern check",
			text:           "buy!!",
			wantSpam:       true,
			wantConfidence: 0.7,
			wantReason:     spamReasonTooShort,
		},
		{
			name:           "six repeated characters",
			text:           "aaaaaa legitimate report",
			wantSpam:       true,
			wantConfidence: 0.8,
			wantReason:     spamReasonRepeated,
		},
		{
			name:     "five repeated characters is not enough",
			text:     "aaaaa legitimate report",
			wantSpam: false,
		},
		{
			name:           "url pattern",
			text:           "check out https://example.com for details",
			wantSpam:       true,
			wantConfidence: 0.9,
			wantReason:     spamReasonPattern,
		},
		{
			name:           "email pattern",
			text:           "contact someone@example.com about it",
			wantSpam:       true,
			wantConfidence: 0.9,
			wantReason:     spamReasonPattern,
		},
		{
			name:           "commercial phrase",
			text:           "huge discount available, order now",
			wantSpam:       true,
			wantConfidence: 0.9,
			wantReason:     spamReasonPattern,
		},
		{
			name:           "call to action phrase",
			text:           "visit our store today",
			wantSpam:       true,
			wantConfidence: 0.9,
			wantReason:     spamReasonPattern,
		},
		{
			name:           "ordinary report is clean",
			text:           "streetlamp flickering at the corner of my block",
			wantSpam:       false,
			wantConfidence: 0.1,
		},
		{
			name:           "empty input",
			text:           "",
			wantSpam:       false,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSpam(tt.text)
			if got.IsSpam != tt.wantSpam {
				t.Fatalf("DetectSpam(%q).IsSpam = %v, want %v", tt.text, got.IsSpam, tt.wantSpam)
			}
			if tt.wantSpam && got.Reason != tt.wantReason {
				t.Errorf("DetectSpam(%q).Reason = %q, want %q", tt.text, got.Reason, tt.wantReason)
			}
			if tt.wantConfidence != 0 && got.Confidence != tt.wantConfidence {
				t.Errorf("DetectSpam(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConfidence)
			}
		})
	}
}
