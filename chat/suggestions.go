package chat

import "wefix/models"

// maxSuggestions caps the quick-reply chips a client renders.
const maxSuggestions = 4

// SmartSuggestions tailors follow-up suggestions to the recent
// conversation instead of the per-intent defaults: a user who just
// described an issue is nudged to submit it, one who asked for help is
// nudged toward a first report, and repeat describers get the search
// shortcut.
func SmartSuggestions(history []models.ConversationTurn) []string {
	var suggestions []string
	add := func(s string) {
		for _, existing := range suggestions {
			if existing == s {
				return
			}
		}
		suggestions = append(suggestions, s)
	}

	described := 0
	for i := len(history) - 1; i >= 0 && i >= len(history)-5; i-- {
		switch Intent(history[i].Intent) {
		case IntentIssueDescription:
			described++
			add("Submit this report")
		case IntentHelp, IntentGreeting:
			add("Report an issue")
		case IntentStatsRequest:
			add("Show the leaderboard")
		case IntentImageRequest:
			add("Upload a photo")
		}
	}
	if described > 1 {
		add("Find similar issues")
	}
	add("Help")

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
