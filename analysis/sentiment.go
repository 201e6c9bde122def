package analysis

import (
	"math"
	"strings"

	"wefix/models"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// neutralConfidence is a fixed constant, not computed. Kept as-is for
// compatibility with stored records.
const neutralConfidence = 0.5

// AnalyzeSentiment labels an issue description positive, negative or
// neutral by counting sentiment keyword hits. Confidence for a
// non-neutral label is min(count/5, 1). Empty input is neutral at 0.
func AnalyzeSentiment(text string) models.Sentiment {
	if text == "" {
		return models.Sentiment{Label: SentimentNeutral, Confidence: 0}
	}

	lower := strings.ToLower(text)
	positive := countMatches(lower, positiveKeywords)
	negative := countMatches(lower, negativeKeywords)

	switch {
	case positive > negative && positive > 0:
		return models.Sentiment{
			Label:      SentimentPositive,
			Confidence: round2(math.Min(float64(positive)/5, 1)),
		}
	case negative > positive && negative > 0:
		return models.Sentiment{
			Label:      SentimentNegative,
			Confidence: round2(math.Min(float64(negative)/5, 1)),
		}
	default:
		return models.Sentiment{Label: SentimentNeutral, Confidence: neutralConfidence}
	}
}
