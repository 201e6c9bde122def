// Package service wires the analysis pipeline, storage, chat and event
// publishing into the operations the HTTP handlers expose.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"

	"wefix/analysis"
	"wefix/chat"
	"wefix/config"
	"wefix/location"
	"wefix/metrics"
	"wefix/models"
	"wefix/points"
	"wefix/rabbitmq"
	"wefix/similarity"
	"wefix/vision"
)

// Routing keys for published issue events.
const (
	EventIssueCreated  = "issue.created"
	EventIssueResolved = "issue.resolved"
)

// Store is the persistence surface the service needs. *database.Database
// implements it.
type Store interface {
	SaveIssue(ctx context.Context, userID, title, description, imageURL string, result *models.AnalysisResult) (int64, error)
	IssuesByCategory(ctx context.Context, category string, limit int) ([]models.IssueSummary, error)
	RecentIssues(ctx context.Context, limit int) ([]models.IssueSummary, error)
	UpdateIssueStatus(ctx context.Context, issueID int64, status string) error
	GetStats(ctx context.Context) (*models.PlatformStats, error)
	TopScores(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	AwardPoints(ctx context.Context, userID string, delta int) error
}

// IssueEvent is the payload published on issue lifecycle changes.
type IssueEvent struct {
	IssueID  int64     `json:"issue_id"`
	UserID   string    `json:"user_id"`
	Category string    `json:"category"`
	Priority string    `json:"priority"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}

// Service runs the issue understanding pipeline and the assistant.
type Service struct {
	cfg        *config.Config
	store      Store
	classifier *vision.Classifier
	extractor  *location.Extractor
	searcher   *similarity.Searcher
	sessions   *chat.SessionStore
	publisher  *rabbitmq.Publisher
}

// New assembles a service from its parts. publisher may be nil.
func New(cfg *config.Config, store Store, classifier *vision.Classifier,
	extractor *location.Extractor, publisher *rabbitmq.Publisher) *Service {
	return &Service{
		cfg:        cfg,
		store:      store,
		classifier: classifier,
		extractor:  extractor,
		searcher:   similarity.NewSearcher(store),
		sessions:   chat.NewSessionStore(),
		publisher:  publisher,
	}
}

// Start logs readiness. Schema migration runs before the service is
// constructed, so there is nothing else to bring up.
func (s *Service) Start() {
	log.Infof("service ready (similar limit %d, nearby radius %.1f km)",
		s.cfg.SimilarLimit, s.cfg.NearbyRadius)
}

// Stop releases the event publisher.
func (s *Service) Stop() {
	if err := s.publisher.Close(); err != nil {
		log.Errorf("failed to close publisher: %v", err)
	}
}

// AnalyzeIssue runs the full pipeline over one candidate report:
// text classification, optional image classification, priority,
// location resolution and similar-issue lookup.
func (s *Service) AnalyzeIssue(ctx context.Context, text string, imageData []byte, device *location.DeviceCoordinates) (*models.AnalysisResult, error) {
	start := time.Now()

	var image *models.ImageAnalysis
	if len(imageData) > 0 {
		classified := s.classifier.Classify(imageData)
		if classified.UsedFallback {
			metrics.ImageFallbackTotal.Inc()
		}
		image = &classified
	}

	result := analysis.Analyze(text, image)

	if loc := s.extractor.Extract(ctx, text, device); loc != nil {
		result.Location = loc
	}

	similar, err := s.searcher.FindSimilar(ctx, text, s.cfg.SimilarLimit)
	if err != nil {
		// Similarity is advisory; the analysis still stands.
		log.Errorf("similar issue lookup failed: %v", err)
	} else {
		result.SimilarIssues = similar
	}

	metrics.AnalysesTotal.WithLabelValues(analysis.FinalCategory(result)).Inc()
	metrics.AnalysisDurationSeconds.Observe(time.Since(start).Seconds())

	return result, nil
}

// CreateIssue persists an analyzed issue, credits the reporter and
// publishes the created event.
func (s *Service) CreateIssue(ctx context.Context, userID, title, description, imageURL string, result *models.AnalysisResult) (int64, error) {
	id, err := s.store.SaveIssue(ctx, userID, title, description, imageURL, result)
	if err != nil {
		return 0, fmt.Errorf("failed to save issue: %w", err)
	}

	if err := s.store.AwardPoints(ctx, userID, points.ReportIssue); err != nil {
		log.Errorf("failed to award report points to %s: %v", userID, err)
	}

	event := IssueEvent{
		IssueID:  id,
		UserID:   userID,
		Category: analysis.FinalCategory(result),
		Status:   "Open",
		At:       time.Now().UTC(),
	}
	if result != nil && result.Priority != nil {
		event.Priority = result.Priority.Level
	}
	if err := s.publisher.Publish(EventIssueCreated, event); err != nil {
		metrics.PublishErrorTotal.Inc()
		log.Errorf("failed to publish issue created event: %v", err)
	}

	return id, nil
}

// ResolveIssue closes an issue and credits the resolver.
func (s *Service) ResolveIssue(ctx context.Context, issueID int64, resolverID string) error {
	if err := s.store.UpdateIssueStatus(ctx, issueID, "Resolved"); err != nil {
		return err
	}

	if err := s.store.AwardPoints(ctx, resolverID, points.ResolveIssue); err != nil {
		log.Errorf("failed to award resolve points to %s: %v", resolverID, err)
	}

	event := IssueEvent{
		IssueID: issueID,
		UserID:  resolverID,
		Status:  "Resolved",
		At:      time.Now().UTC(),
	}
	if err := s.publisher.Publish(EventIssueResolved, event); err != nil {
		metrics.PublishErrorTotal.Inc()
		log.Errorf("failed to publish issue resolved event: %v", err)
	}
	return nil
}

// FindSimilar exposes text similarity search.
func (s *Service) FindSimilar(ctx context.Context, text string, limit int) ([]models.IssueSummary, error) {
	if limit <= 0 {
		limit = s.cfg.SimilarLimit
	}
	return s.searcher.FindSimilar(ctx, text, limit)
}

// FindNearby exposes coordinate proximity search.
func (s *Service) FindNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.IssueSummary, error) {
	if radiusKm <= 0 {
		radiusKm = s.cfg.NearbyRadius
	}
	if limit <= 0 {
		limit = s.cfg.SimilarLimit
	}
	return s.searcher.FindNearby(ctx, lat, lng, radiusKm, limit)
}

// Stats returns the platform counters.
func (s *Service) Stats(ctx context.Context) (*models.PlatformStats, error) {
	return s.store.GetStats(ctx)
}

// Leaderboard returns the top point holders.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.TopScores(ctx, limit)
}
