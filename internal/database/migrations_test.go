package database

import (
	"path/filepath"
	"sort"
	"testing"
)

// Every dialect must ship the same migration files so schema version
// numbers line up across backends.
func TestMigrationDirsShipSameFiles(t *testing.T) {
	dialects := []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()}

	perDialect := make(map[string][]string)
	for _, dialect := range dialects {
		pattern := filepath.Join("../../migrations", dialect.MigrationsSubdir(), "*.sql")
		files, err := filepath.Glob(pattern)
		if err != nil {
			t.Fatalf("failed to glob %s: %v", pattern, err)
		}
		if len(files) == 0 {
			t.Fatalf("no migrations found for dialect %s", dialect.MigrationsSubdir())
		}

		names := make([]string, 0, len(files))
		for _, file := range files {
			names = append(names, filepath.Base(file))
		}
		sort.Strings(names)
		perDialect[dialect.MigrationsSubdir()] = names
	}

	reference := perDialect["sqlite"]
	for subdir, names := range perDialect {
		if len(names) != len(reference) {
			t.Fatalf("%s ships %d migrations, sqlite ships %d", subdir, len(names), len(reference))
		}
		for i := range names {
			if names[i] != reference[i] {
				t.Errorf("%s migration %q does not match sqlite's %q", subdir, names[i], reference[i])
			}
		}
	}
}

func TestRunMigrationsUsesDialectSubdir(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "migrations_test.db")
	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	tables := []string{
		"users", "sessions", "children", "streaks",
		"ring_assignments", "activity_logs", "module_progress",
		"placement_quizzes", "lessons", "lesson_progress",
	}
	for _, table := range tables {
		var name string
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	// Running twice must be a no-op, not a failure.
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}
