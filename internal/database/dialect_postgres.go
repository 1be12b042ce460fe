package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) SupportsLastInsertId() bool {
	// PostgreSQL doesn't support LastInsertId(), needs RETURNING clause
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for PostgreSQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// PostgreSQL has foreign keys enabled by default, no pragma needed
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) BoolValue(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (d *PostgresDialect) UpsertRingAssignmentQuery() string {
	return `
		INSERT INTO ring_assignments
			(child_id, ring_slot, ring_type, module_id, subject, custom_label, custom_icon, color, daily_goal_minutes, auto_assigned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (child_id, ring_slot) DO UPDATE SET
			ring_type = excluded.ring_type,
			module_id = excluded.module_id,
			subject = excluded.subject,
			custom_label = excluded.custom_label,
			custom_icon = excluded.custom_icon,
			color = excluded.color,
			daily_goal_minutes = excluded.daily_goal_minutes,
			auto_assigned = excluded.auto_assigned,
			updated_at = CURRENT_TIMESTAMP
	`
}

func (d *PostgresDialect) UpsertModuleProgressQuery() string {
	return `
		INSERT INTO module_progress
			(child_id, module_id, current_chapter, is_completed, skipped_via_quiz, quiz_score, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (child_id, module_id) DO UPDATE SET
			current_chapter = excluded.current_chapter,
			is_completed = excluded.is_completed,
			skipped_via_quiz = excluded.skipped_via_quiz,
			quiz_score = excluded.quiz_score,
			completed_at = excluded.completed_at
	`
}
