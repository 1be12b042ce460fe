package repository

import (
	"database/sql"
	"time"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

// LessonRepository handles lesson and lesson progress database operations
type LessonRepository struct {
	db database.DBTX
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db database.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

const lessonColumns = `id, title, subject, grade_level, description, duration_minutes, difficulty, module_id, chapter_number, order_index, created_at`

func scanLessonRow(scan func(dest ...interface{}) error) (*models.Lesson, error) {
	lesson := &models.Lesson{}
	err := scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Subject,
		&lesson.GradeLevel,
		&lesson.Description,
		&lesson.DurationMinutes,
		&lesson.Difficulty,
		&lesson.ModuleID,
		&lesson.ChapterNumber,
		&lesson.OrderIndex,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetLessonByID retrieves one lesson, or nil when it doesn't exist
func (r *LessonRepository) GetLessonByID(id int64) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`

	lesson, err := scanLessonRow(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return lesson, err
}

// GetLessonsByModule retrieves a module's lessons in chapter/order sequence
func (r *LessonRepository) GetLessonsByModule(moduleID int) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE module_id = ? ORDER BY chapter_number, order_index`
	return r.queryLessons(query, moduleID)
}

// GetLessonsBySubjectGrade retrieves lessons filtered by subject and grade
func (r *LessonRepository) GetLessonsBySubjectGrade(subject, gradeLevel string) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE subject = ? AND grade_level = ? ORDER BY module_id, chapter_number, order_index`
	return r.queryLessons(query, subject, gradeLevel)
}

func (r *LessonRepository) queryLessons(query string, args ...interface{}) ([]models.Lesson, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLessonRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}

	return lessons, rows.Err()
}

// CreateLesson stores a lesson and returns its ID
func (r *LessonRepository) CreateLesson(lesson *models.Lesson) (int64, error) {
	query := `INSERT INTO lessons (title, subject, grade_level, description, duration_minutes, difficulty, module_id, chapter_number, order_index) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return r.db.ExecReturningID(query,
		lesson.Title,
		lesson.Subject,
		lesson.GradeLevel,
		lesson.Description,
		lesson.DurationMinutes,
		lesson.Difficulty,
		lesson.ModuleID,
		lesson.ChapterNumber,
		lesson.OrderIndex,
	)
}

// RecordCompletion inserts a completed lesson progress row
func (r *LessonRepository) RecordCompletion(progress *models.LessonProgress) (int64, error) {
	query := `INSERT INTO lesson_progress (child_id, lesson_id, completed_at, time_spent_seconds, score, problems_correct, problems_total) VALUES (?, ?, ?, ?, ?, ?, ?)`

	var score interface{}
	if progress.Score != nil {
		score = *progress.Score
	}
	completedAt := time.Now()
	if progress.CompletedAt != nil {
		completedAt = *progress.CompletedAt
	}

	return r.db.ExecReturningID(query,
		progress.ChildID,
		progress.LessonID,
		completedAt,
		progress.TimeSpentSeconds,
		score,
		progress.ProblemsCorrect,
		progress.ProblemsTotal,
	)
}

// GetCompletionsByChild retrieves a child's lesson progress rows
func (r *LessonRepository) GetCompletionsByChild(childID int64) ([]models.LessonProgress, error) {
	query := `SELECT id, child_id, lesson_id, started_at, completed_at, time_spent_seconds, score, problems_correct, problems_total FROM lesson_progress WHERE child_id = ? ORDER BY started_at DESC`

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.LessonProgress
	for rows.Next() {
		var progress models.LessonProgress
		var completedAt sql.NullTime
		var score sql.NullInt64

		err := rows.Scan(
			&progress.ID,
			&progress.ChildID,
			&progress.LessonID,
			&progress.StartedAt,
			&completedAt,
			&progress.TimeSpentSeconds,
			&score,
			&progress.ProblemsCorrect,
			&progress.ProblemsTotal,
		)
		if err != nil {
			return nil, err
		}
		if completedAt.Valid {
			progress.CompletedAt = &completedAt.Time
		}
		if score.Valid {
			s := int(score.Int64)
			progress.Score = &s
		}
		records = append(records, progress)
	}

	return records, rows.Err()
}
