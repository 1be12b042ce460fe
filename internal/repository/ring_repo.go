package repository

import (
	"database/sql"

	"learnloop/internal/database"
	"learnloop/internal/models"
)

// RingRepository handles ring assignment database operations
type RingRepository struct {
	db database.DBTX
}

// NewRingRepository creates a new ring repository
func NewRingRepository(db database.DBTX) *RingRepository {
	return &RingRepository{db: db}
}

const ringColumns = `id, child_id, ring_slot, ring_type, module_id, subject, custom_label, custom_icon, color, daily_goal_minutes, auto_assigned, created_at, updated_at`

func scanRingRow(scan func(dest ...interface{}) error) (*models.RingAssignment, error) {
	ring := &models.RingAssignment{}
	var moduleID sql.NullInt64
	var subject, customLabel, customIcon sql.NullString

	err := scan(
		&ring.ID,
		&ring.ChildID,
		&ring.RingSlot,
		&ring.RingType,
		&moduleID,
		&subject,
		&customLabel,
		&customIcon,
		&ring.Color,
		&ring.DailyGoalMinutes,
		&ring.AutoAssigned,
		&ring.CreatedAt,
		&ring.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if moduleID.Valid {
		id := int(moduleID.Int64)
		ring.ModuleID = &id
	}
	if subject.Valid {
		ring.Subject = &subject.String
	}
	if customLabel.Valid {
		ring.CustomLabel = &customLabel.String
	}
	if customIcon.Valid {
		ring.CustomIcon = &customIcon.String
	}
	return ring, nil
}

// GetRingAssignments retrieves a child's ring assignments ordered by slot
func (r *RingRepository) GetRingAssignments(childID int64) ([]models.RingAssignment, error) {
	query := `SELECT ` + ringColumns + ` FROM ring_assignments WHERE child_id = ? ORDER BY ring_slot`

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rings []models.RingAssignment
	for rows.Next() {
		ring, err := scanRingRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		rings = append(rings, *ring)
	}

	return rings, rows.Err()
}

// GetRingBySlot retrieves one ring assignment by (child, slot)
func (r *RingRepository) GetRingBySlot(childID int64, slot int) (*models.RingAssignment, error) {
	query := `SELECT ` + ringColumns + ` FROM ring_assignments WHERE child_id = ? AND ring_slot = ?`

	ring, err := scanRingRow(r.db.QueryRow(query, childID, slot).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ring, err
}

// GetRingByModule finds the ring assignment (if any) currently pointing at
// a curriculum module for a child.
func (r *RingRepository) GetRingByModule(childID int64, moduleID int) (*models.RingAssignment, error) {
	query := `SELECT ` + ringColumns + ` FROM ring_assignments WHERE child_id = ? AND module_id = ? ORDER BY ring_slot LIMIT 1`

	ring, err := scanRingRow(r.db.QueryRow(query, childID, moduleID).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ring, err
}

// UpsertRing inserts or replaces the assignment for (child, slot) and
// returns the stored row.
func (r *RingRepository) UpsertRing(childID int64, desc models.RingDescriptor, autoAssigned bool) (*models.RingAssignment, error) {
	query := r.db.GetDialect().UpsertRingAssignmentQuery()

	_, err := r.db.Exec(query,
		childID,
		desc.Slot,
		desc.RingType,
		nullableInt(desc.ModuleID),
		nullableString(desc.Subject),
		nullableString(desc.CustomLabel),
		nullableString(desc.CustomIcon),
		desc.Color,
		desc.DailyGoalMinutes,
		autoAssigned,
	)
	if err != nil {
		return nil, err
	}

	return r.GetRingBySlot(childID, desc.Slot)
}

// AdvanceRingModule points an existing ring at a new curriculum module
func (r *RingRepository) AdvanceRingModule(ringID int64, moduleID int) error {
	query := `UPDATE ring_assignments SET module_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.Exec(query, moduleID, ringID)
	return err
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}
