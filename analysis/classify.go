package analysis

import (
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"wefix/models"
)

// categoryMatchers holds one substring matcher per category, built once
// at startup. A match set from ahocorasick contains each keyword at most
// once, which is exactly the "distinct keywords present" count we score.
var categoryMatchers = func() []*ahocorasick.Matcher {
	matchers := make([]*ahocorasick.Matcher, len(categoryTable))
	for i, entry := range categoryTable {
		matchers[i] = ahocorasick.NewStringMatcher(entry.Keywords)
	}
	return matchers
}()

// ClassifyText maps an issue description to a category by counting, per
// category, how many of its trigger keywords occur in the text. The
// highest count wins; ties go to the first-declared category. Confidence
// is min(count/3, 1); with no keyword evidence at all, the result is the
// fallback category at 0.1. Empty input returns the fallback at 0, which
// callers can tell apart from "no evidence".
func ClassifyText(text string) models.TextAnalysis {
	if text == "" {
		return models.TextAnalysis{Category: CategoryOther, Confidence: 0}
	}

	lower := []byte(strings.ToLower(text))
	scores := make(map[string]int, len(categoryTable))
	maxScore := 0
	best := CategoryOther
	for i, entry := range categoryTable {
		score := len(categoryMatchers[i].Match(lower))
		scores[entry.Name] = score
		if score > maxScore {
			maxScore = score
			best = entry.Name
		}
	}

	confidence := 0.1
	if maxScore > 0 {
		confidence = math.Min(float64(maxScore)/3, 1)
	}

	return models.TextAnalysis{
		Category:   best,
		Confidence: round2(confidence),
		Scores:     scores,
	}
}

// round2 keeps confidences at two decimal places on the wire.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func countMatches(lower string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}
