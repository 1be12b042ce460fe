package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"learnloop/internal/database"
)

// BackupData is the complete portable dump of family learning data.
// Format is database-agnostic JSON so a sqlite export can restore into
// postgres and back.
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Children   []ChildBackup    `json:"children"`
	Streaks    []StreakBackup   `json:"streaks"`
	Rings      []RingBackup     `json:"ring_assignments"`
	Activity   []ActivityBackup `json:"activity_logs"`
	Progress   []ProgressBackup `json:"module_progress"`
}

// UserBackup is a parent account record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	FamilyCode    string    `json:"family_code"`
	AvatarEmoji   string    `json:"avatar_emoji"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChildBackup is a child profile record for backup
type ChildBackup struct {
	ID          int64     `json:"id"`
	ParentID    int64     `json:"parent_id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Grade       string    `json:"grade"`
	AvatarEmoji string    `json:"avatar_emoji"`
	PinHash     string    `json:"pin_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StreakBackup is a streak record for backup
type StreakBackup struct {
	ChildID        int64  `json:"child_id"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	LastActiveDate string `json:"last_active_date"`
}

// RingBackup is a ring assignment record for backup
type RingBackup struct {
	ChildID          int64   `json:"child_id"`
	RingSlot         int     `json:"ring_slot"`
	RingType         string  `json:"ring_type"`
	ModuleID         *int64  `json:"module_id"`
	Subject          *string `json:"subject"`
	CustomLabel      *string `json:"custom_label"`
	CustomIcon       *string `json:"custom_icon"`
	Color            string  `json:"color"`
	DailyGoalMinutes int     `json:"daily_goal_minutes"`
	AutoAssigned     bool    `json:"auto_assigned"`
}

// ActivityBackup is an activity log record for backup
type ActivityBackup struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	ActivityType string    `json:"activity_type"`
	Minutes      int       `json:"minutes"`
	PointsEarned int       `json:"points_earned"`
	LessonID     *int64    `json:"lesson_id"`
	LoggedDate   string    `json:"logged_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProgressBackup is a module progress record for backup
type ProgressBackup struct {
	ChildID        int64      `json:"child_id"`
	ModuleID       int        `json:"module_id"`
	CurrentChapter int        `json:"current_chapter"`
	IsCompleted    bool       `json:"is_completed"`
	SkippedViaQuiz bool       `json:"skipped_via_quiz"`
	QuizScore      *int       `json:"quiz_score"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportChildren(backup); err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}
	if err := s.exportStreaks(backup); err != nil {
		return fmt.Errorf("failed to export streaks: %w", err)
	}
	if err := s.exportRings(backup); err != nil {
		return fmt.Errorf("failed to export ring assignments: %w", err)
	}
	if err := s.exportActivity(backup); err != nil {
		return fmt.Errorf("failed to export activity logs: %w", err)
	}
	if err := s.exportProgress(backup); err != nil {
		return fmt.Errorf("failed to export module progress: %w", err)
	}

	log.Printf("Exported: %d users, %d children, %d rings, %d activity logs, %d progress rows",
		len(backup.Users), len(backup.Children), len(backup.Rings),
		len(backup.Activity), len(backup.Progress))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream. Rows are
// inserted in dependency order into an empty schema.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	if err := s.importUsers(backup.Users); err != nil {
		return err
	}
	if err := s.importChildren(backup.Children); err != nil {
		return err
	}
	if err := s.importStreaks(backup.Streaks); err != nil {
		return err
	}
	if err := s.importRings(backup.Rings); err != nil {
		return err
	}
	if err := s.importActivity(backup.Activity); err != nil {
		return err
	}
	if err := s.importProgress(backup.Progress); err != nil {
		return err
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, family_code, avatar_emoji, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.FamilyCode, &u.AvatarEmoji, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportChildren(backup *BackupData) error {
	query := "SELECT id, parent_id, name, age, grade, avatar_emoji, pin_hash, created_at, updated_at FROM children ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Age, &c.Grade, &c.AvatarEmoji, &c.PinHash, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) exportStreaks(backup *BackupData) error {
	query := "SELECT child_id, current_streak, longest_streak, last_active_date FROM streaks ORDER BY child_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st StreakBackup
		if err := rows.Scan(&st.ChildID, &st.CurrentStreak, &st.LongestStreak, &st.LastActiveDate); err != nil {
			return err
		}
		backup.Streaks = append(backup.Streaks, st)
	}
	return rows.Err()
}

func (s *BackupService) exportRings(backup *BackupData) error {
	query := "SELECT child_id, ring_slot, ring_type, module_id, subject, custom_label, custom_icon, color, daily_goal_minutes, auto_assigned FROM ring_assignments ORDER BY child_id, ring_slot"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rb RingBackup
		var moduleID sql.NullInt64
		var subject, label, icon sql.NullString
		if err := rows.Scan(&rb.ChildID, &rb.RingSlot, &rb.RingType, &moduleID, &subject, &label, &icon, &rb.Color, &rb.DailyGoalMinutes, &rb.AutoAssigned); err != nil {
			return err
		}
		if moduleID.Valid {
			rb.ModuleID = &moduleID.Int64
		}
		if subject.Valid {
			rb.Subject = &subject.String
		}
		if label.Valid {
			rb.CustomLabel = &label.String
		}
		if icon.Valid {
			rb.CustomIcon = &icon.String
		}
		backup.Rings = append(backup.Rings, rb)
	}
	return rows.Err()
}

func (s *BackupService) exportActivity(backup *BackupData) error {
	query := "SELECT id, child_id, activity_type, minutes, points_earned, lesson_id, logged_date, created_at FROM activity_logs ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a ActivityBackup
		var lessonID sql.NullInt64
		if err := rows.Scan(&a.ID, &a.ChildID, &a.ActivityType, &a.Minutes, &a.PointsEarned, &lessonID, &a.LoggedDate, &a.CreatedAt); err != nil {
			return err
		}
		if lessonID.Valid {
			a.LessonID = &lessonID.Int64
		}
		backup.Activity = append(backup.Activity, a)
	}
	return rows.Err()
}

func (s *BackupService) exportProgress(backup *BackupData) error {
	query := "SELECT child_id, module_id, current_chapter, is_completed, skipped_via_quiz, quiz_score, started_at, completed_at FROM module_progress ORDER BY child_id, module_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProgressBackup
		var quizScore sql.NullInt64
		var completedAt sql.NullTime
		if err := rows.Scan(&p.ChildID, &p.ModuleID, &p.CurrentChapter, &p.IsCompleted, &p.SkippedViaQuiz, &quizScore, &p.StartedAt, &completedAt); err != nil {
			return err
		}
		if quizScore.Valid {
			score := int(quizScore.Int64)
			p.QuizScore = &score
		}
		if completedAt.Valid {
			p.CompletedAt = &completedAt.Time
		}
		backup.Progress = append(backup.Progress, p)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, family_code, avatar_emoji, oauth_provider, oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.FamilyCode, u.AvatarEmoji, nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChildren(children []ChildBackup) error {
	log.Printf("Importing %d children...", len(children))
	for _, c := range children {
		query := "INSERT INTO children (id, parent_id, name, age, grade, avatar_emoji, pin_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, c.ID, c.ParentID, c.Name, c.Age, c.Grade, c.AvatarEmoji, c.PinHash, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import child %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importStreaks(streaks []StreakBackup) error {
	log.Printf("Importing %d streaks...", len(streaks))
	for _, st := range streaks {
		query := "INSERT INTO streaks (child_id, current_streak, longest_streak, last_active_date) VALUES (?, ?, ?, ?)"
		_, err := s.db.Exec(query, st.ChildID, st.CurrentStreak, st.LongestStreak, st.LastActiveDate)
		if err != nil {
			return fmt.Errorf("failed to import streak for child %d: %w", st.ChildID, err)
		}
	}
	return nil
}

func (s *BackupService) importRings(rings []RingBackup) error {
	log.Printf("Importing %d ring assignments...", len(rings))
	for _, rb := range rings {
		var moduleID, subject, label, icon interface{}
		if rb.ModuleID != nil {
			moduleID = *rb.ModuleID
		}
		if rb.Subject != nil {
			subject = *rb.Subject
		}
		if rb.CustomLabel != nil {
			label = *rb.CustomLabel
		}
		if rb.CustomIcon != nil {
			icon = *rb.CustomIcon
		}
		query := "INSERT INTO ring_assignments (child_id, ring_slot, ring_type, module_id, subject, custom_label, custom_icon, color, daily_goal_minutes, auto_assigned) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, rb.ChildID, rb.RingSlot, rb.RingType, moduleID, subject, label, icon, rb.Color, rb.DailyGoalMinutes, rb.AutoAssigned)
		if err != nil {
			return fmt.Errorf("failed to import ring slot %d for child %d: %w", rb.RingSlot, rb.ChildID, err)
		}
	}
	return nil
}

func (s *BackupService) importActivity(logs []ActivityBackup) error {
	log.Printf("Importing %d activity logs...", len(logs))
	for _, a := range logs {
		var lessonID interface{}
		if a.LessonID != nil {
			lessonID = *a.LessonID
		}
		query := "INSERT INTO activity_logs (id, child_id, activity_type, minutes, points_earned, lesson_id, logged_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, a.ID, a.ChildID, a.ActivityType, a.Minutes, a.PointsEarned, lessonID, a.LoggedDate, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import activity log %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importProgress(progress []ProgressBackup) error {
	log.Printf("Importing %d module progress rows...", len(progress))
	for _, p := range progress {
		var quizScore, completedAt interface{}
		if p.QuizScore != nil {
			quizScore = *p.QuizScore
		}
		if p.CompletedAt != nil {
			completedAt = *p.CompletedAt
		}
		query := "INSERT INTO module_progress (child_id, module_id, current_chapter, is_completed, skipped_via_quiz, quiz_score, started_at, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, p.ChildID, p.ModuleID, p.CurrentChapter, p.IsCompleted, p.SkippedViaQuiz, quizScore, p.StartedAt, completedAt)
		if err != nil {
			return fmt.Errorf("failed to import progress for child %d module %d: %w", p.ChildID, p.ModuleID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
