package repository

import (
	"database/sql"
	"time"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

// ProgressRepository handles module progress database operations
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `id, child_id, module_id, current_chapter, is_completed, skipped_via_quiz, quiz_score, started_at, completed_at`

func scanProgressRow(scan func(dest ...interface{}) error) (*models.ModuleProgress, error) {
	progress := &models.ModuleProgress{}
	var quizScore sql.NullInt64
	var completedAt sql.NullTime

	err := scan(
		&progress.ID,
		&progress.ChildID,
		&progress.ModuleID,
		&progress.CurrentChapter,
		&progress.IsCompleted,
		&progress.SkippedViaQuiz,
		&quizScore,
		&progress.StartedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if quizScore.Valid {
		score := int(quizScore.Int64)
		progress.QuizScore = &score
	}
	if completedAt.Valid {
		progress.CompletedAt = &completedAt.Time
	}
	return progress, nil
}

// GetProgress retrieves a child's progress on one module, or nil
func (r *ProgressRepository) GetProgress(childID int64, moduleID int) (*models.ModuleProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM module_progress WHERE child_id = ? AND module_id = ?`

	progress, err := scanProgressRow(r.db.QueryRow(query, childID, moduleID).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return progress, err
}

// GetProgressByChild retrieves a child's module progress rows
func (r *ProgressRepository) GetProgressByChild(childID int64) ([]models.ModuleProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM module_progress WHERE child_id = ? ORDER BY module_id`

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ModuleProgress
	for rows.Next() {
		progress, err := scanProgressRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *progress)
	}

	return records, rows.Err()
}

// GetCompletedModuleIDs returns the IDs of all modules a child has
// completed, whether by working through them or skipping via quiz.
func (r *ProgressRepository) GetCompletedModuleIDs(childID int64) ([]int, error) {
	query := `SELECT module_id FROM module_progress WHERE child_id = ? AND is_completed = ` + r.db.GetDialect().BoolValue(true)

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// MarkSkipped upserts a completed, skipped-via-quiz progress row for the
// module, recording the quiz score.
func (r *ProgressRepository) MarkSkipped(childID int64, moduleID, quizScore int) error {
	query := r.db.GetDialect().UpsertModuleProgressQuery()
	_, err := r.db.Exec(query, childID, moduleID, 0, true, true, quizScore, time.Now())
	return err
}

// MarkCompleted upserts a completed progress row for the module
func (r *ProgressRepository) MarkCompleted(childID int64, moduleID, finalChapter int) error {
	query := r.db.GetDialect().UpsertModuleProgressQuery()
	_, err := r.db.Exec(query, childID, moduleID, finalChapter, true, false, nil, time.Now())
	return err
}
