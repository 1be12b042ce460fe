package repository

import (
	"database/sql"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

// ActivityRepository handles activity log and streak database operations
type ActivityRepository struct {
	db database.DBTX
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db database.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, child_id, activity_type, minutes, points_earned, lesson_id, logged_date, created_at`

func scanActivityRow(scan func(dest ...interface{}) error) (*models.ActivityLog, error) {
	entry := &models.ActivityLog{}
	var lessonID sql.NullInt64

	err := scan(
		&entry.ID,
		&entry.ChildID,
		&entry.ActivityType,
		&entry.Minutes,
		&entry.PointsEarned,
		&lessonID,
		&entry.LoggedDate,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lessonID.Valid {
		entry.LessonID = &lessonID.Int64
	}
	return entry, nil
}

// InsertLog records an activity log entry and returns its ID
func (r *ActivityRepository) InsertLog(entry *models.ActivityLog) (int64, error) {
	query := `INSERT INTO activity_logs (child_id, activity_type, minutes, points_earned, lesson_id, logged_date) VALUES (?, ?, ?, ?, ?, ?)`

	var lessonID interface{}
	if entry.LessonID != nil {
		lessonID = *entry.LessonID
	}

	return r.db.ExecReturningID(query,
		entry.ChildID,
		entry.ActivityType,
		entry.Minutes,
		entry.PointsEarned,
		lessonID,
		entry.LoggedDate,
	)
}

// GetLogsByDate retrieves all activity entries for a child on one date
func (r *ActivityRepository) GetLogsByDate(childID int64, date string) ([]models.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE child_id = ? AND logged_date = ? ORDER BY created_at`
	return r.queryLogs(query, childID, date)
}

// GetLogsByDateRange retrieves activity entries for a child within an
// inclusive date range.
func (r *ActivityRepository) GetLogsByDateRange(childID int64, from, to string) ([]models.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE child_id = ? AND logged_date >= ? AND logged_date <= ? ORDER BY logged_date, created_at`
	return r.queryLogs(query, childID, from, to)
}

func (r *ActivityRepository) queryLogs(query string, args ...interface{}) ([]models.ActivityLog, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		entry, err := scanActivityRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *entry)
	}

	return logs, rows.Err()
}

// TotalPoints sums all points a child has ever earned
func (r *ActivityRepository) TotalPoints(childID int64) (int, error) {
	query := `SELECT COALESCE(SUM(points_earned), 0) FROM activity_logs WHERE child_id = ?`

	var total int
	err := r.db.QueryRow(query, childID).Scan(&total)
	return total, err
}

// GetStreak retrieves a child's streak row, or nil when none exists
func (r *ActivityRepository) GetStreak(childID int64) (*models.Streak, error) {
	query := `SELECT id, child_id, current_streak, longest_streak, last_active_date, updated_at FROM streaks WHERE child_id = ?`

	streak := &models.Streak{}
	err := r.db.QueryRow(query, childID).Scan(
		&streak.ID,
		&streak.ChildID,
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&streak.LastActiveDate,
		&streak.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

// SaveStreak writes a child's streak counters and last active date
func (r *ActivityRepository) SaveStreak(streak *models.Streak) error {
	query := `UPDATE streaks SET current_streak = ?, longest_streak = ?, last_active_date = ?, updated_at = CURRENT_TIMESTAMP WHERE child_id = ?`
	_, err := r.db.Exec(query,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastActiveDate,
		streak.ChildID,
	)
	return err
}
