package repository

import (
	"database/sql"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

// ChildRepository handles child profile database operations
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

const childColumns = `id, parent_id, name, age, grade, avatar_emoji, pin_hash, created_at, updated_at`

func scanChildRow(scan func(dest ...interface{}) error) (*models.Child, error) {
	child := &models.Child{}
	err := scan(
		&child.ID,
		&child.ParentID,
		&child.Name,
		&child.Age,
		&child.Grade,
		&child.AvatarEmoji,
		&child.PinHash,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return child, nil
}

// CreateChild inserts a new child profile and provisions its streak row.
// Both run in one transaction so every child has a streak row from birth.
func (r *ChildRepository) CreateChild(parentID int64, name string, age int, grade, avatarEmoji, pinHash string) (*models.Child, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	insertChild := `
		INSERT INTO children (parent_id, name, age, grade, avatar_emoji, pin_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	childID, err := tx.ExecReturningID(insertChild, parentID, name, age, grade, avatarEmoji, pinHash)
	if err != nil {
		return nil, err
	}

	insertStreak := `INSERT INTO streaks (child_id, current_streak, longest_streak, last_active_date) VALUES (?, 0, 0, '')`
	if _, err := tx.Exec(insertStreak, childID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetChildByID(childID)
}

// GetChildByID retrieves a child by ID
func (r *ChildRepository) GetChildByID(childID int64) (*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = ?`

	child, err := scanChildRow(r.db.QueryRow(query, childID).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return child, err
}

// GetChildrenByParent retrieves all children of a parent, oldest profile first
func (r *ChildRepository) GetChildrenByParent(parentID int64) ([]models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE parent_id = ? ORDER BY id`

	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		child, err := scanChildRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		children = append(children, *child)
	}

	return children, rows.Err()
}

// UpdateChild updates a child's profile fields
func (r *ChildRepository) UpdateChild(childID int64, name string, age int, grade, avatarEmoji string) error {
	query := `
		UPDATE children
		SET name = ?, age = ?, grade = ?, avatar_emoji = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, age, grade, avatarEmoji, childID)
	return err
}

// UpdateChildPin replaces a child's PIN hash
func (r *ChildRepository) UpdateChildPin(childID int64, pinHash string) error {
	query := `UPDATE children SET pin_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.Exec(query, pinHash, childID)
	return err
}

// DeleteChild removes a child profile; dependent rows cascade
func (r *ChildRepository) DeleteChild(childID int64) error {
	query := `DELETE FROM children WHERE id = ?`
	_, err := r.db.Exec(query, childID)
	return err
}
