package chat

import (
	"fmt"
	"strings"

	"wefix/models"
)

// Reply is the assistant's answer to one message: text plus follow-up
// suggestions the client renders as quick-reply chips.
type Reply struct {
	Text        string   `json:"text"`
	Intent      Intent   `json:"intent"`
	Suggestions []string `json:"suggestions,omitempty"`
}

var replyTemplates = map[Intent]string{
	IntentGreeting: "Hello! I'm the WeFix assistant. I can help you report civic issues, " +
		"analyze photos, and find similar reports in your area. What would you like to do?",
	IntentFarewell: "Goodbye! Thanks for helping keep your community in good shape. " +
		"Come back any time you spot an issue.",
	IntentThanks: "You're welcome! Happy to help. Is there anything else you'd like to do?",
	IntentReportRequest: "I can help you report an issue. Please describe what you see — " +
		"for example \"there is a large pothole on Main Street\" — and attach a photo if you have one.",
	IntentImageRequest: "Sure, I can analyze a photo. Upload an image of the issue and " +
		"I'll classify it and estimate its priority.",
	IntentPriorityInfo: "Priority is estimated from the urgency of your description, the issue " +
		"category, and the sentiment. Safety hazards, water clogging, and road damage are " +
		"treated as critical categories.",
	IntentSimilarityRequest: "I can search existing reports for you. Describe the issue " +
		"you're looking for — for example \"overflowing garbage near the market\" — and " +
		"I'll list the closest matches.",
	IntentHelp: "Here's what I can do:\n" +
		"• **Report an issue** — describe the problem and I'll categorize it\n" +
		"• **Analyze a photo** — upload an image for classification\n" +
		"• **Find similar issues** — search reports near you\n" +
		"• **Platform statistics** — see how many issues have been resolved\n" +
		"Just tell me what you need.",
	IntentFallback: "I'm not sure I understood that. You can describe an issue " +
		"(for example \"there is a water leak near the park\"), ask for help, or request statistics.",
}

var replySuggestions = map[Intent][]string{
	IntentGreeting:          {"Report an issue", "Analyze a photo", "Show statistics"},
	IntentFarewell:          {"Report an issue"},
	IntentThanks:            {"Report another issue", "Show statistics"},
	IntentReportRequest:     {"There is a pothole on my street", "Upload a photo"},
	IntentImageRequest:      {"Upload a photo"},
	IntentCategoryInfo:      {"Report an issue", "What determines priority?"},
	IntentPriorityInfo:      {"Report an issue", "What categories exist?"},
	IntentHelp:              {"Report an issue", "Find similar issues", "Show statistics"},
	IntentStatsRequest:      {"Report an issue"},
	IntentSimilarityRequest: {"Report an issue"},
	IntentFallback:          {"Help", "Report an issue", "Show statistics"},
}

// StaticReply renders the canned answer for intents that need no data
// lookup. Data-driven intents (stats, similarity, issue descriptions)
// are answered by the service layer instead.
func StaticReply(intent Intent) Reply {
	text, ok := replyTemplates[intent]
	if !ok {
		text = replyTemplates[IntentFallback]
	}
	return Reply{
		Text:        text,
		Intent:      intent,
		Suggestions: replySuggestions[intent],
	}
}

// CategoryReply lists the categories the classifier knows.
func CategoryReply(categories []string) Reply {
	var b strings.Builder
	b.WriteString("I can recognize these issue categories:\n")
	for _, category := range categories {
		fmt.Fprintf(&b, "• %s\n", category)
	}
	b.WriteString("Describe your issue and I'll pick the best match.")
	return Reply{
		Text:        b.String(),
		Intent:      IntentCategoryInfo,
		Suggestions: replySuggestions[IntentCategoryInfo],
	}
}

// StatsReply summarizes platform totals.
func StatsReply(stats models.PlatformStats) Reply {
	open := stats.TotalIssues - stats.ResolvedIssues
	text := fmt.Sprintf(
		"Here's how the platform is doing:\n"+
			"• **%d** issues reported\n"+
			"• **%d** resolved\n"+
			"• **%d** still open\n"+
			"• **%d** registered users",
		stats.TotalIssues, stats.ResolvedIssues, open, stats.TotalUsers)
	return Reply{
		Text:        text,
		Intent:      IntentStatsRequest,
		Suggestions: replySuggestions[IntentStatsRequest],
	}
}

// AnalysisReply weaves a full analysis result into a conversational
// answer, section by section, skipping whatever the pipeline could not
// produce.
func AnalysisReply(result *models.AnalysisResult) Reply {
	var b strings.Builder
	b.WriteString("I've analyzed your issue. Here's what I found:\n\n")

	if result.TextAnalysis != nil {
		fmt.Fprintf(&b, "**Category:** %s (%.0f%% confidence)\n",
			result.TextAnalysis.Category, result.TextAnalysis.Confidence*100)
	}
	if result.ImageAnalysis != nil {
		if result.ImageAnalysis.UsedFallback {
			b.WriteString("**Image:** I couldn't classify the photo, so I relied on your description.\n")
		} else {
			fmt.Fprintf(&b, "**Image:** looks like %s (%.0f%% confidence)\n",
				result.ImageAnalysis.Category, result.ImageAnalysis.Confidence*100)
		}
	}
	if result.Priority != nil {
		fmt.Fprintf(&b, "**Priority:** %s — %s\n", result.Priority.Level, result.Priority.Reasoning)
	}
	if result.Location != nil {
		if result.Location.Source == "text" {
			fmt.Fprintf(&b, "**Location:** %s (from your description)\n", result.Location.DisplayName)
		} else {
			b.WriteString("**Location:** using your device coordinates\n")
		}
	}
	if result.Spam != nil && result.Spam.IsSpam {
		b.WriteString("\n⚠️ This report looks like it might be spam. Please add more detail if it's genuine.\n")
	}
	if len(result.SimilarIssues) > 0 {
		fmt.Fprintf(&b, "\nI found **%d** similar report(s) nearby:\n", len(result.SimilarIssues))
		for _, issue := range result.SimilarIssues {
			fmt.Fprintf(&b, "• %s (%s, %.0f%% match)\n",
				issue.Title, issue.Status, issue.SimilarityScore*100)
		}
		b.WriteString("If one of these is your issue, consider upvoting it instead of filing a duplicate.\n")
	}
	b.WriteString("\nWould you like to submit this report?")

	return Reply{
		Text:        b.String(),
		Intent:      IntentIssueDescription,
		Suggestions: analysisSuggestions(result),
	}
}

// analysisSuggestions picks follow-ups that match what the analysis
// actually found.
func analysisSuggestions(result *models.AnalysisResult) []string {
	suggestions := []string{"Submit this report"}
	if result.ImageAnalysis == nil {
		suggestions = append(suggestions, "Add a photo")
	}
	if result.Location == nil {
		suggestions = append(suggestions, "Add a location")
	}
	if len(result.SimilarIssues) > 0 {
		suggestions = append(suggestions, "Show similar issues")
	}
	suggestions = append(suggestions, "Start over")
	return suggestions
}
