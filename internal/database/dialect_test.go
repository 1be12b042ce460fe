package database

import (
	"strings"
	"testing"
)

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM streaks WHERE child_id = ?",
			expected: "SELECT * FROM streaks WHERE child_id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO activity_logs (child_id, minutes) VALUES (?, ?)",
			expected: "INSERT INTO activity_logs (child_id, minutes) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered(%q) = %q, want %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestDialectProperties(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		driver        string
		lastInsertID  bool
		trueBool      string
	}{
		{name: "sqlite", dialect: NewSQLiteDialect(), driver: "sqlite3", lastInsertID: true, trueBool: "1"},
		{name: "mysql", dialect: NewMySQLDialect(), driver: "mysql", lastInsertID: true, trueBool: "TRUE"},
		{name: "postgres", dialect: NewPostgresDialect(), driver: "postgres", lastInsertID: false, trueBool: "TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %q, want %q", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
			if got := tt.dialect.BoolValue(true); got != tt.trueBool {
				t.Errorf("BoolValue(true) = %q, want %q", got, tt.trueBool)
			}
		})
	}
}

func TestPostgresRewritesUpsertPlaceholders(t *testing.T) {
	d := NewPostgresDialect()
	rewritten := d.RewriteQuery(d.UpsertRingAssignmentQuery())
	if strings.Contains(rewritten, "?") {
		t.Error("postgres upsert should have no ? placeholders after rewrite")
	}
	if !strings.Contains(rewritten, "$10") {
		t.Error("postgres ring upsert should number all 10 parameters")
	}
}

func TestUpsertQueriesTargetConflictKeys(t *testing.T) {
	for _, d := range []Dialect{NewSQLiteDialect(), NewPostgresDialect()} {
		if q := d.UpsertRingAssignmentQuery(); !strings.Contains(q, "ON CONFLICT (child_id, ring_slot)") {
			t.Errorf("%s ring upsert missing conflict key", d.DriverName())
		}
		if q := d.UpsertModuleProgressQuery(); !strings.Contains(q, "ON CONFLICT (child_id, module_id)") {
			t.Errorf("%s progress upsert missing conflict key", d.DriverName())
		}
	}

	mysql := NewMySQLDialect()
	if !strings.Contains(mysql.UpsertRingAssignmentQuery(), "ON DUPLICATE KEY UPDATE") {
		t.Error("mysql ring upsert missing duplicate-key clause")
	}
}
