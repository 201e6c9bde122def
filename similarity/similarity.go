// Package similarity ranks stored issues against a candidate
// description (keyword overlap plus Jaccard word similarity) and finds
// issues near a coordinate.
package similarity

import (
	"context"
	"sort"
	"strings"

	"github.com/golang/geo/s2"

	"wefix/analysis"
	"wefix/models"
)

const (
	// minQueryChars rejects queries too short to rank meaningfully.
	minQueryChars = 10
	// maxKeywords caps the extracted query keywords.
	maxKeywords = 10
	// minKeywordLen drops short filler words before the stop-word check.
	minKeywordLen = 4
	// scoreThreshold drops weak matches.
	scoreThreshold = 0.2
	// candidatePageSize bounds how many stored issues one search scans.
	candidatePageSize = 100

	keywordWeight = 0.6
	jaccardWeight = 0.4

	earthRadiusKm = 6371.0
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "should": true, "could": true, "may": true, "might": true,
	"must": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true, "me": true, "him": true,
	"her": true, "us": true, "them": true,
}

// IssueStore is the read-only view of stored issues the searcher needs.
type IssueStore interface {
	IssuesByCategory(ctx context.Context, category string, limit int) ([]models.IssueSummary, error)
	RecentIssues(ctx context.Context, limit int) ([]models.IssueSummary, error)
}

// Searcher ranks stored issues against candidate text or coordinates.
type Searcher struct {
	store IssueStore
}

func NewSearcher(store IssueStore) *Searcher {
	return &Searcher{store: store}
}

// FindSimilar returns up to limit stored issues ranked by similarity to
// the text, most similar first. Queries shorter than 10 characters
// return an empty result without touching the store. When the query
// classifies to a non-fallback category the candidate pool is
// pre-filtered to that category; a misclassified query therefore
// narrows its own result set, which is a known trade-off.
func (s *Searcher) FindSimilar(ctx context.Context, text string, limit int) ([]models.IssueSummary, error) {
	if len(text) < minQueryChars {
		return nil, nil
	}

	classification := analysis.ClassifyText(text)
	keywords := ExtractKeywords(text)

	var (
		candidates []models.IssueSummary
		err        error
	)
	if classification.Category != analysis.CategoryOther {
		candidates, err = s.store.IssuesByCategory(ctx, classification.Category, candidatePageSize)
	} else {
		candidates, err = s.store.RecentIssues(ctx, candidatePageSize)
	}
	if err != nil {
		return nil, err
	}

	scored := make([]models.IssueSummary, 0, len(candidates))
	for _, issue := range candidates {
		target := issue.Description
		if target == "" {
			target = issue.Title
		}
		score := Score(text, target, keywords)
		if score > scoreThreshold {
			issue.SimilarityScore = score
			scored = append(scored, issue)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// FindNearby returns up to limit issues within radiusKm of the point,
// closest first, scanning a bounded page of recent issues.
func (s *Searcher) FindNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.IssueSummary, error) {
	candidates, err := s.store.RecentIssues(ctx, candidatePageSize)
	if err != nil {
		return nil, err
	}

	origin := s2.LatLngFromDegrees(lat, lng)
	nearby := make([]models.IssueSummary, 0, len(candidates))
	for _, issue := range candidates {
		if issue.Latitude == 0 && issue.Longitude == 0 {
			continue
		}
		point := s2.LatLngFromDegrees(issue.Latitude, issue.Longitude)
		distance := origin.Distance(point).Radians() * earthRadiusKm
		if distance <= radiusKm {
			issue.DistanceKm = distance
			nearby = append(nearby, issue)
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// ExtractKeywords pulls up to 10 significant words (longer than 3
// characters, not stop words) out of the text, lower-cased, in order.
func ExtractKeywords(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	keywords := make([]string, 0, maxKeywords)
	for _, word := range words {
		if len(word) < minKeywordLen || stopWords[word] {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// Score computes the similarity between two texts as a weighted blend
// of keyword coverage and Jaccard word-set overlap. If either text
// contains the other verbatim the score short-circuits to 1.
func Score(text1, text2 string, keywords []string) float64 {
	if text2 == "" {
		return 0
	}

	lower1 := strings.ToLower(text1)
	lower2 := strings.ToLower(text2)

	if strings.Contains(lower1, lower2) || strings.Contains(lower2, lower1) {
		return 1.0
	}

	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(lower2, keyword) {
			matches++
		}
	}
	keywordScore := 0.0
	if len(keywords) > 0 {
		keywordScore = float64(matches) / float64(len(keywords))
	}

	return keywordWeight*keywordScore + jaccardWeight*jaccard(lower1, lower2)
}

func jaccard(text1, text2 string) float64 {
	set1 := wordSet(text1)
	set2 := wordSet(text2)

	intersection := 0
	for word := range set1 {
		if set2[word] {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		set[word] = true
	}
	return set
}
