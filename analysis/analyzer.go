package analysis

import (
	"time"

	"wefix/models"
)

// Analyze runs the text classifiers and the priority estimator over one
// issue description, folding in an image classification when one is
// available. Location and similar-issue lookup are attached by the
// caller; this function is pure and never fails.
func Analyze(text string, image *models.ImageAnalysis) *models.AnalysisResult {
	result := &models.AnalysisResult{
		ImageAnalysis: image,
		Timestamp:     time.Now().UTC(),
	}

	if text != "" {
		textAnalysis := ClassifyText(text)
		sentiment := AnalyzeSentiment(text)
		spam := DetectSpam(text)
		result.TextAnalysis = &textAnalysis
		result.Sentiment = &sentiment
		result.Spam = &spam
	}

	// The image category, when present, wins over the text category for
	// priority purposes, fallback result included.
	category := CategoryOther
	imageCategory := ""
	if image != nil {
		category = image.Category
		imageCategory = image.Category
	} else if result.TextAnalysis != nil {
		category = result.TextAnalysis.Category
	}

	sentimentLabel := SentimentNeutral
	if result.Sentiment != nil {
		sentimentLabel = result.Sentiment.Label
	}

	priority := CalculatePriority(text, category, sentimentLabel, imageCategory)
	result.Priority = &priority

	return result
}

// FinalCategory picks the category that gets persisted with an issue:
// the image classifier's label when an image was actually classified,
// the text classifier's otherwise. A fallback image result never
// overrides the text category.
func FinalCategory(result *models.AnalysisResult) string {
	if result.ImageAnalysis != nil && !result.ImageAnalysis.UsedFallback {
		return result.ImageAnalysis.Category
	}
	if result.TextAnalysis != nil {
		return result.TextAnalysis.Category
	}
	return CategoryOther
}
