package chat

import "testing"

func TestRoute(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{"greeting", "hello there", IntentGreeting},
		{"greeting casual", "hey!", IntentGreeting},
		{"farewell", "ok bye for now", IntentFarewell},
		{"thanks", "thanks a lot", IntentThanks},
		{"report request", "I want to submit a complaint", IntentReportRequest},
		{"image request", "can you analyze my photo", IntentImageRequest},
		{"category info", "what types of problems do you handle", IntentCategoryInfo},
		{"priority info", "how urgent is my case", IntentPriorityInfo},
		{"help", "what are your capabilities", IntentHelp},
		{"stats", "show me the statistics", IntentStatsRequest},
		{"similarity", "find similar cases in my area", IntentSimilarityRequest},
		{
			"narrative issue description",
			"there is a pothole on Elm Street near my house",
			IntentIssueDescription,
		},
		{
			"keyword issue description",
			"the garbage bin outside our building has been overflowing for days",
			IntentIssueDescription,
		},
		{"bare keyword too short", "pothole", IntentFallback},
		{"no signal", "random nonsense", IntentFallback},
		{"empty", "", IntentFallback},
		{"whitespace only", "   ", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.message); got != tt.want {
				t.Errorf("Route(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

// Earlier rules in the cascade must win when two rules both match.
func TestRouteCascadeOrder(t *testing.T) {
	if got := Route("hello, I want to report a pothole"); got != IntentGreeting {
		t.Errorf("greeting should win over report, got %q", got)
	}
	if got := Route("please report the broken streetlight"); got != IntentReportRequest {
		t.Errorf("report should win over issue description, got %q", got)
	}
}
