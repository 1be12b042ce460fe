package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for MySQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Ensure foreign key checks are enabled
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;"); err != nil {
		return err
	}

	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

func (d *MySQLDialect) BoolValue(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (d *MySQLDialect) UpsertRingAssignmentQuery() string {
	return `
		INSERT INTO ring_assignments
			(child_id, ring_slot, ring_type, module_id, subject, custom_label, custom_icon, color, daily_goal_minutes, auto_assigned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			ring_type = VALUES(ring_type),
			module_id = VALUES(module_id),
			subject = VALUES(subject),
			custom_label = VALUES(custom_label),
			custom_icon = VALUES(custom_icon),
			color = VALUES(color),
			daily_goal_minutes = VALUES(daily_goal_minutes),
			auto_assigned = VALUES(auto_assigned),
			updated_at = CURRENT_TIMESTAMP
	`
}

func (d *MySQLDialect) UpsertModuleProgressQuery() string {
	return `
		INSERT INTO module_progress
			(child_id, module_id, current_chapter, is_completed, skipped_via_quiz, quiz_score, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			current_chapter = VALUES(current_chapter),
			is_completed = VALUES(is_completed),
			skipped_via_quiz = VALUES(skipped_via_quiz),
			quiz_score = VALUES(quiz_score),
			completed_at = VALUES(completed_at)
	`
}
