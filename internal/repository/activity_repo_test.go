package repository

import (
	"path/filepath"
	"testing"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

func newActivityTestRepo(t *testing.T) (*ActivityRepository, int64) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "activity_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	parent, err := NewUserRepository(db).CreateUser("parent@example.com", "x", "Test Parent", "XYZ789", "🙂")
	if err != nil {
		t.Fatalf("failed to create parent: %v", err)
	}
	child, err := NewChildRepository(db).CreateChild(parent.ID, "Maya", 7, "Grade 1", "🦊", "x")
	if err != nil {
		t.Fatalf("failed to create child: %v", err)
	}

	return NewActivityRepository(db), child.ID
}

func TestTotalPointsSumsStoredLogs(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo, childID := newActivityTestRepo(t)

	total, err := repo.TotalPoints(childID)
	if err != nil {
		t.Fatalf("failed to total points with no logs: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 points before any logs, got %d", total)
	}

	for _, entry := range []models.ActivityLog{
		{ChildID: childID, ActivityType: "ring_1", Minutes: 20, PointsEarned: 20, LoggedDate: "2026-08-28"},
		{ChildID: childID, ActivityType: "reading", Minutes: 10, PointsEarned: 8, LoggedDate: "2026-08-29"},
	} {
		if _, err := repo.InsertLog(&entry); err != nil {
			t.Fatalf("failed to insert log: %v", err)
		}
	}

	total, err = repo.TotalPoints(childID)
	if err != nil {
		t.Fatalf("failed to total points: %v", err)
	}
	if total != 28 {
		t.Fatalf("expected 28 total points, got %d", total)
	}
}
