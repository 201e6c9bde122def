package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"wefix/models"
)

// StatusOpen is the status every new issue starts in.
const StatusOpen = "Open"

const issueColumns = `id, title, description, category, status,
	latitude, longitude, image_url, created_at`

// SaveIssue stores one analyzed issue, flattening the analysis result
// into row fields, and returns the new row ID.
func (d *Database) SaveIssue(ctx context.Context, userID, title, description, imageURL string, result *models.AnalysisResult) (int64, error) {
	category := "Other"
	categoryConfidence := 0.0
	sentiment := "neutral"
	priority := "Low"
	priorityScore := 0
	priorityReasoning := ""
	isSpam := false
	var lat, lng float64
	locationSource := ""

	if result != nil {
		if result.TextAnalysis != nil {
			category = result.TextAnalysis.Category
			categoryConfidence = result.TextAnalysis.Confidence
		}
		if result.ImageAnalysis != nil && !result.ImageAnalysis.UsedFallback {
			category = result.ImageAnalysis.Category
			categoryConfidence = result.ImageAnalysis.Confidence
		}
		if result.Sentiment != nil {
			sentiment = result.Sentiment.Label
		}
		if result.Priority != nil {
			priority = result.Priority.Level
			priorityScore = result.Priority.Score
			priorityReasoning = result.Priority.Reasoning
		}
		if result.Spam != nil {
			isSpam = result.Spam.IsSpam
		}
		if result.Location != nil {
			lat = result.Location.Latitude
			lng = result.Location.Longitude
			locationSource = result.Location.Source
		}
	}

	res, err := d.db.ExecContext(ctx, `
		INSERT INTO issues (user_id, title, description, category, category_confidence,
			sentiment, priority, priority_score, priority_reasoning, is_spam, status,
			latitude, longitude, location_source, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, title, description, category, categoryConfidence,
		sentiment, priority, priorityScore, priorityReasoning, isSpam, StatusOpen,
		lat, lng, locationSource, imageURL)
	if err != nil {
		return 0, fmt.Errorf("failed to insert issue: %w", err)
	}
	return res.LastInsertId()
}

// IssuesByCategory returns up to limit issues in the category, newest
// first.
func (d *Database) IssuesByCategory(ctx context.Context, category string, limit int) ([]models.IssueSummary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+issueColumns+`
		FROM issues
		WHERE category = ?
		ORDER BY created_at DESC
		LIMIT ?`, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues by category: %w", err)
	}
	defer rows.Close()
	return scanIssues(rows)
}

// RecentIssues returns up to limit issues, newest first.
func (d *Database) RecentIssues(ctx context.Context, limit int) ([]models.IssueSummary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+issueColumns+`
		FROM issues
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent issues: %w", err)
	}
	defer rows.Close()
	return scanIssues(rows)
}

func scanIssues(rows *sql.Rows) ([]models.IssueSummary, error) {
	var issues []models.IssueSummary
	for rows.Next() {
		var issue models.IssueSummary
		if err := rows.Scan(&issue.ID, &issue.Title, &issue.Description,
			&issue.Category, &issue.Status, &issue.Latitude, &issue.Longitude,
			&issue.ImageURL, &issue.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

// UpdateIssueStatus moves an issue to a new status.
func (d *Database) UpdateIssueStatus(ctx context.Context, issueID int64, status string) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE issues SET status = ? WHERE id = ?`, status, issueID)
	if err != nil {
		return fmt.Errorf("failed to update issue status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("issue %d not found", issueID)
	}
	return nil
}

// GetStats aggregates the platform counters in one round trip per
// counter. Donation amounts are summed as decimals to avoid float
// drift on money.
func (d *Database) GetStats(ctx context.Context) (*models.PlatformStats, error) {
	stats := &models.PlatformStats{}

	counters := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM issues`, &stats.TotalIssues},
		{`SELECT COUNT(*) FROM issues WHERE status = 'Resolved'`, &stats.ResolvedIssues},
		{"SELECT COUNT(*) FROM `groups`", &stats.TotalGroups},
		{`SELECT COUNT(*) FROM profiles`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM fundraisers WHERE active = TRUE`, &stats.ActiveFundraisers},
	}
	for _, c := range counters {
		if err := d.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	var total sql.NullString
	if err := d.db.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM donations`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}
	donations := decimal.Zero
	if total.Valid {
		var err error
		donations, err = decimal.NewFromString(total.String)
		if err != nil {
			return nil, fmt.Errorf("bad donation total %q: %w", total.String, err)
		}
	}
	stats.TotalDonations = donations.StringFixed(2)

	return stats, nil
}

// TopScores returns the points leaderboard, highest first, ranks
// assigned in order.
func (d *Database) TopScores(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT user_id, name, points
		FROM profiles
		ORDER BY points DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.Points); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AwardPoints adds delta to a user's points, creating the profile on
// first contact and clamping the balance at zero.
func (d *Database) AwardPoints(ctx context.Context, userID string, delta int) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, points)
		VALUES (?, GREATEST(?, 0))
		ON DUPLICATE KEY UPDATE points = GREATEST(points + ?, 0)`,
		userID, delta, delta)
	if err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}
	return nil
}
