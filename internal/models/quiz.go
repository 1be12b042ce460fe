package models

// DefaultPassingScore applies when a quiz row doesn't specify a threshold
const DefaultPassingScore = 4

// QuizQuestion is one multiple-choice question in a placement quiz
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// PlacementQuiz is the per-module question set a child can take to skip a
// module. Quizzes are authored externally and read-only here.
type PlacementQuiz struct {
	ID           int64          `json:"id"`
	ModuleID     int            `json:"module_id"`
	Questions    []QuizQuestion `json:"questions"`
	PassingScore int            `json:"passing_score"`
}
