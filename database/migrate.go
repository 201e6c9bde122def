package database

import "fmt"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS issues (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL,
		title VARCHAR(500) NOT NULL,
		description TEXT,
		category VARCHAR(64) NOT NULL DEFAULT 'Other',
		category_confidence FLOAT DEFAULT 0.0,
		sentiment VARCHAR(16) DEFAULT 'neutral',
		priority VARCHAR(16) DEFAULT 'Low',
		priority_score INT DEFAULT 0,
		priority_reasoning VARCHAR(500) DEFAULT '',
		is_spam BOOLEAN DEFAULT FALSE,
		status VARCHAR(32) NOT NULL DEFAULT 'Open',
		latitude DOUBLE DEFAULT 0.0,
		longitude DOUBLE DEFAULT 0.0,
		location_source VARCHAR(16) DEFAULT '',
		image_url VARCHAR(1000) DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_issues_category (category),
		INDEX idx_issues_status (status),
		INDEX idx_issues_created_at (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id VARCHAR(255) PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		points INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	"CREATE TABLE IF NOT EXISTS `groups` (" + `
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		owner_id VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id BIGINT NOT NULL,
		user_id VARCHAR(255) NOT NULL,
		joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS fundraisers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		issue_id BIGINT NOT NULL,
		goal DECIMAL(12, 2) NOT NULL DEFAULT 0.00,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_fundraisers_issue (issue_id)
	)`,
	`CREATE TABLE IF NOT EXISTS donations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		fundraiser_id BIGINT NOT NULL,
		user_id VARCHAR(255) NOT NULL,
		amount DECIMAL(12, 2) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_donations_fundraiser (fundraiser_id)
	)`,
}

// Migrate creates the schema if it does not exist.
func (d *Database) Migrate() error {
	for _, stmt := range migrations {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
