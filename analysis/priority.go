package analysis

import (
	"fmt"
	"strings"

	"wefix/models"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// urgentImageClasses boost priority when the image classifier's label
// contains one of them.
var urgentImageClasses = []string{"urgent", "danger", "critical"}

// CalculatePriority combines keyword hits, category, sentiment and an
// optional image category into an urgency tier. Scoring: +3 per
// high-urgency keyword, +1 per medium-urgency keyword, +2 for a critical
// category, +2 for negative sentiment, -1 for positive sentiment, +3 for
// an urgent image class. High at 5+, Medium at 2+, Low otherwise. The
// reasoning lists exactly the conditions that moved the score.
func CalculatePriority(text, category, sentiment, imageCategory string) models.Priority {
	lower := strings.ToLower(text)

	highHits := countMatches(lower, highPriorityKeywords)
	mediumHits := countMatches(lower, mediumPriorityKeywords)

	score := highHits*3 + mediumHits

	var reasons []string
	if highHits > 0 {
		reasons = append(reasons, "Contains urgent keywords")
	}

	if criticalCategories[category] {
		score += 2
		reasons = append(reasons, fmt.Sprintf("Critical category: %s", category))
	}

	switch sentiment {
	case SentimentNegative:
		score += 2
		reasons = append(reasons, "Negative sentiment indicates urgency")
	case SentimentPositive:
		score--
	}

	if imageCategory != "" {
		lowerImage := strings.ToLower(imageCategory)
		for _, class := range urgentImageClasses {
			if strings.Contains(lowerImage, class) {
				score += 3
				reasons = append(reasons, "Urgent condition detected in image")
				break
			}
		}
	}

	level := PriorityLow
	if score >= 5 {
		level = PriorityHigh
	} else if score >= 2 {
		level = PriorityMedium
	}

	reasoning := strings.Join(reasons, ", ")
	if reasoning == "" {
		reasoning = "Based on standard assessment"
	}

	return models.Priority{Level: level, Score: score, Reasoning: reasoning}
}
