package models

import "time"

// ModuleProgress tracks a child's completion state for one curriculum
// module. At most one row exists per (child, module); writes go through
// upsert-on-conflict so a repeated skip simply overwrites the first.
type ModuleProgress struct {
	ID             int64      `json:"id"`
	ChildID        int64      `json:"child_id"`
	ModuleID       int        `json:"module_id"`
	CurrentChapter int        `json:"current_chapter"`
	IsCompleted    bool       `json:"is_completed"`
	SkippedViaQuiz bool       `json:"skipped_via_quiz"`
	QuizScore      *int       `json:"quiz_score"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// Lesson is a unit of authored lesson content within a module chapter
type Lesson struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	GradeLevel      string    `json:"grade_level"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      string    `json:"difficulty"`
	ModuleID        int       `json:"module_id"`
	ChapterNumber   int       `json:"chapter_number"`
	OrderIndex      int       `json:"order_index"`
	CreatedAt       time.Time `json:"created_at"`
}

// LessonProgress records a child's pass through one lesson
type LessonProgress struct {
	ID               int64      `json:"id"`
	ChildID          int64      `json:"child_id"`
	LessonID         int64      `json:"lesson_id"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	Score            *int       `json:"score"`
	ProblemsCorrect  int        `json:"problems_correct"`
	ProblemsTotal    int        `json:"problems_total"`
}
