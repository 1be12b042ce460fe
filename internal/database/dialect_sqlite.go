package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}

	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) BoolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (d *SQLiteDialect) UpsertRingAssignmentQuery() string {
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

func (d *SQLiteDialect) UpsertModuleProgressQuery() string {
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
