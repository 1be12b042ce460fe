package models

import "time"

// ActivityLog is an immutable append-only record of one logged session.
// ActivityType is either "ring_<slot>" or a legacy literal such as "math",
// "reading" or "chores" kept for historical rows. Logs are never updated
// or deleted.
type ActivityLog struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	ActivityType string    `json:"activity_type"`
	Minutes      int       `json:"minutes"`
	PointsEarned int       `json:"points_earned"`
	LessonID     *int64    `json:"lesson_id"`
	LoggedDate   string    `json:"logged_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Streak holds a child's consecutive-day activity counters. Invariant:
// LongestStreak >= CurrentStreak after every update.
type Streak struct {
	ID             int64     `json:"id"`
	ChildID        int64     `json:"child_id"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	LastActiveDate string    `json:"last_active_date"`
	UpdatedAt      time.Time `json:"updated_at"`
}
