package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

// QuizRepository handles placement quiz database operations
type QuizRepository struct {
	db database.DBTX
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db database.DBTX) *QuizRepository {
	return &QuizRepository{db: db}
}

// GetQuizByModule retrieves the placement quiz for a module, or nil when
// none has been authored. Questions are stored as a JSON document.
func (r *QuizRepository) GetQuizByModule(moduleID int) (*models.PlacementQuiz, error) {
	query := `SELECT id, module_id, questions, passing_score FROM placement_quizzes WHERE module_id = ?`

	quiz := &models.PlacementQuiz{}
	var questionsJSON string

	err := r.db.QueryRow(query, moduleID).Scan(&quiz.ID, &quiz.ModuleID, &questionsJSON, &quiz.PassingScore)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(questionsJSON), &quiz.Questions); err != nil {
		return nil, fmt.Errorf("quiz %d has malformed questions: %w", quiz.ID, err)
	}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = models.DefaultPassingScore
	}
	return quiz, nil
}

// CreateQuiz stores a placement quiz for a module
func (r *QuizRepository) CreateQuiz(quiz *models.PlacementQuiz) (int64, error) {
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO placement_quizzes (module_id, questions, passing_score) VALUES (?, ?, ?)`
	return r.db.ExecReturningID(query, quiz.ModuleID, string(questionsJSON), quiz.PassingScore)
}
