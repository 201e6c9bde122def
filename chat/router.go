// Package chat implements the assistant conversation: a rule-ordered
// intent router, canned reply templates, contextual suggestions and the
// per-session turn history.
package chat

import (
	"regexp"
	"strings"
)

// Intent is the routed meaning of one user message.
type Intent string

const (
	IntentGreeting          Intent = "greeting"
	IntentFarewell          Intent = "farewell"
	IntentThanks            Intent = "thanks"
	IntentReportRequest     Intent = "report_request"
	IntentImageRequest      Intent = "image_request"
	IntentCategoryInfo      Intent = "category_info"
	IntentPriorityInfo      Intent = "priority_info"
	IntentHelp              Intent = "help"
	IntentStatsRequest      Intent = "stats_request"
	IntentSimilarityRequest Intent = "similarity_request"
	IntentIssueDescription  Intent = "issue_description"
	IntentFallback          Intent = "fallback"
)

// routes is evaluated top-down against the lower-cased message; the
// first matching rule wins, so order is load-bearing. Issue-description
// detection runs after every more specific intent.
var routes = []struct {
	intent  Intent
	pattern *regexp.Regexp
}{
	{IntentGreeting, regexp.MustCompile(`(hi|hello|hey|greetings)`)},
	{IntentFarewell, regexp.MustCompile(`(bye|goodbye|see you later|farewell)`)},
	{IntentThanks, regexp.MustCompile(`(thank|thanks|appreciate)`)},
	{IntentReportRequest, regexp.MustCompile(`(report|new issue|submit|complaint)`)},
	{IntentImageRequest, regexp.MustCompile(`(analyze|classify|image|photo|picture|upload)`)},
	{IntentCategoryInfo, regexp.MustCompile(`(category|categories|types|kinds|what can)`)},
	{IntentPriorityInfo, regexp.MustCompile(`(priority|urgent|important)`)},
	{IntentHelp, regexp.MustCompile(`(help|commands|what can you|features|capabilities)`)},
	{IntentStatsRequest, regexp.MustCompile(`(statistics|stats|how many|total issues)`)},
	{IntentSimilarityRequest, regexp.MustCompile(`(find similar|search|look for|similar|related)`)},
}

// issueKeywords mark a message as a likely issue description.
var issueKeywords = []string{
	"water", "leak", "pothole", "road", "garbage", "trash",
	"light", "broken", "damage", "problem", "issue",
}

// narrativePhrases mark sentence shapes people use when describing
// something they observed.
var narrativePhrases = []string{
	"there is", "there's", "i see", "i saw", "i noticed", "i found",
}

// minIssueDescriptionLen keeps short keyword-only messages ("pothole")
// out of the analysis path.
const minIssueDescriptionLen = 10

// Route maps a user message to an intent. The cascade order is fixed;
// two rules may both match and the earlier one wins.
func Route(message string) Intent {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return IntentFallback
	}

	for _, route := range routes {
		if route.pattern.MatchString(lower) {
			return route.intent
		}
	}

	if isIssueDescription(lower) {
		return IntentIssueDescription
	}

	return IntentFallback
}

// isIssueDescription requires a domain keyword or a narrative phrase,
// and enough length to be worth analyzing.
func isIssueDescription(lower string) bool {
	if len(lower) <= minIssueDescriptionLen {
		return false
	}
	for _, keyword := range issueKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	for _, phrase := range narrativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
