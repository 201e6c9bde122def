package models

import "time"

// TextAnalysis is the lexical classifier output for an issue description.
type TextAnalysis struct {
	Category   string         `json:"category"`
	Confidence float64        `json:"confidence"`
	Scores     map[string]int `json:"scores,omitempty"`
}

// Prediction is one class probability from the image classifier.
type Prediction struct {
	Class       string  `json:"class"`
	Probability float64 `json:"probability"`
}

// ImageAnalysis is the image classifier output. UsedFallback distinguishes
// "the model scored this as Other" from "no model was available".
type ImageAnalysis struct {
	Category       string       `json:"category"`
	Confidence     float64      `json:"confidence"`
	AllPredictions []Prediction `json:"all_predictions"`
	UsedFallback   bool         `json:"used_fallback"`
}

// Sentiment is the keyword sentiment score for an issue description.
type Sentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Priority is the estimated urgency of an issue.
type Priority struct {
	Level     string `json:"level"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// Spam is the spam detector verdict for an issue description.
type Spam struct {
	IsSpam     bool    `json:"is_spam"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// LocationInfo is a resolved location for an issue. Source is "text" when
// the location was extracted from the description and geocoded, "browser"
// when it came from client-reported coordinates.
type LocationInfo struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Source      string  `json:"source"`
	MatchedText string  `json:"matched_text,omitempty"`
	DisplayName string  `json:"display_name,omitempty"`
}

// AnalysisResult is the assembled output of one pipeline run. It is built
// fresh per request and never mutated afterwards; on save its fields are
// flattened into an issue row.
type AnalysisResult struct {
	TextAnalysis  *TextAnalysis  `json:"text_analysis"`
	ImageAnalysis *ImageAnalysis `json:"image_analysis,omitempty"`
	Sentiment     *Sentiment     `json:"sentiment"`
	Priority      *Priority      `json:"priority"`
	Spam          *Spam          `json:"spam"`
	Location      *LocationInfo  `json:"location_info,omitempty"`
	SimilarIssues []IssueSummary `json:"similar_issues,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// IssueSummary is a read-only projection of a stored issue, used for
// display and similarity ranking.
type IssueSummary struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	CreatedAt       time.Time `json:"created_at"`
	ImageURL        string    `json:"image_url,omitempty"`
	SimilarityScore float64   `json:"similarity_score,omitempty"`
	DistanceKm      float64   `json:"distance_km,omitempty"`
}

// PlatformStats are the aggregate counters shown on the dashboard and
// returned for stats questions in chat.
type PlatformStats struct {
	TotalIssues       int    `json:"total_issues"`
	ResolvedIssues    int    `json:"resolved_issues"`
	TotalGroups       int    `json:"total_groups"`
	TotalUsers        int    `json:"total_users"`
	ActiveFundraisers int    `json:"active_fundraisers"`
	TotalDonations    string `json:"total_donations"`
}

// ConversationTurn is one exchange in a chat session: what the user
// said, how it was routed, and what the assistant answered.
type ConversationTurn struct {
	UserMessage string    `json:"user_message"`
	Intent      string    `json:"intent"`
	Reply       string    `json:"reply"`
	Timestamp   time.Time `json:"timestamp"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}
