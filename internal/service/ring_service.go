package service

import (
	"errors"
	"fmt"

	"learnloop/internal/curriculum"
	"learnloop/internal/models"
	"learnloop/internal/repository"
	"learnloop/internal/utils"
)

var ErrModuleNotFound = errors.New("module not found")

// slotColors are the default ring colors applied when a descriptor omits one
var slotColors = map[int]string{
	1: "#FF6B6B",
	2: "#4ECDC4",
	3: "#6BCF7F",
}

// RingService handles ring configuration and curriculum module advancement
type RingService struct {
	ringRepo     *repository.RingRepository
	progressRepo *repository.ProgressRepository
}

// NewRingService creates a new ring service
func NewRingService(ringRepo *repository.RingRepository, progressRepo *repository.ProgressRepository) *RingService {
	return &RingService{
		ringRepo:     ringRepo,
		progressRepo: progressRepo,
	}
}

// GetRings returns a child's configured rings. An unconfigured child gets
// an empty list; only the progress aggregator substitutes the starter set.
func (s *RingService) GetRings(childID int64) ([]models.RingAssignment, error) {
	rings, err := s.ringRepo.GetRingAssignments(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ring assignments: %w", err)
	}
	if rings == nil {
		rings = []models.RingAssignment{}
	}
	return rings, nil
}

// validateDescriptor checks one slot's configuration input
func validateDescriptor(desc models.RingDescriptor) error {
	if desc.Slot < 1 || desc.Slot > models.RingSlotCount {
		return utils.ValidationError{Field: "slot", Message: fmt.Sprintf("slot must be between 1 and %d", models.RingSlotCount)}
	}
	switch desc.RingType {
	case models.RingTypeCurriculum:
		hasSubject := desc.Subject != nil && *desc.Subject != ""
		if desc.ModuleID == nil && !hasSubject {
			return utils.ValidationError{Field: "subject", Message: "curriculum rings need a subject or module"}
		}
	case models.RingTypeCustomTimed:
		if desc.CustomLabel == nil || *desc.CustomLabel == "" {
			return utils.ValidationError{Field: "custom_label", Message: "custom rings need a label"}
		}
	default:
		return utils.ValidationError{Field: "ring_type", Message: "unknown ring type"}
	}
	if desc.DailyGoalMinutes < 0 {
		return utils.ValidationError{Field: "daily_goal_minutes", Message: "daily goal cannot be negative"}
	}
	return nil
}

// SaveRingConfig upserts each descriptor independently and reports a
// per-slot result. One slot failing does not roll back the others; the
// caller decides how to present partial success.
func (s *RingService) SaveRingConfig(child *models.Child, descriptors []models.RingDescriptor) []models.SlotResult {
	results := make([]models.SlotResult, 0, len(descriptors))

	for _, desc := range descriptors {
		if err := validateDescriptor(desc); err != nil {
			results = append(results, models.SlotResult{Slot: desc.Slot, Error: err.Error()})
			continue
		}

		if desc.DailyGoalMinutes == 0 {
			desc.DailyGoalMinutes = models.DefaultGoalMinutes
		}
		if desc.Color == "" {
			desc.Color = slotColors[desc.Slot]
		}

		autoAssigned := false
		if desc.RingType == models.RingTypeCurriculum && desc.ModuleID == nil {
			if moduleID, ok := s.autoAssign(child, *desc.Subject); ok {
				desc.ModuleID = &moduleID
				autoAssigned = true
			}
		}

		ring, err := s.ringRepo.UpsertRing(child.ID, desc, autoAssigned)
		if err != nil {
			results = append(results, models.SlotResult{Slot: desc.Slot, Error: fmt.Sprintf("failed to save ring: %v", err)})
			continue
		}
		results = append(results, models.SlotResult{Slot: desc.Slot, Ring: ring})
	}

	return results
}

// autoAssign picks the first grade-appropriate module of a subject the
// child hasn't completed. Returns false when the catalog has nothing left
// to offer; the ring then tracks the subject without a bound module.
func (s *RingService) autoAssign(child *models.Child, subject string) (int, bool) {
	completed, err := s.progressRepo.GetCompletedModuleIDs(child.ID)
	if err != nil {
		return 0, false
	}
	module, ok := curriculum.AutoAssignModule(child.Grade, subject, completed)
	if !ok {
		return 0, false
	}
	return module.ID, true
}

// SkipResult reports the outcome of a module skip
type SkipResult struct {
	SkippedModule curriculum.Module  `json:"skipped_module"`
	NextModule    *curriculum.Module `json:"next_module"`
	RingAdvanced  bool               `json:"ring_advanced"`
}

// SkipModule marks a module completed-via-quiz and advances any ring bound
// to it to the subject's next module. Recording the completion must
// succeed; ring advancement is best-effort on top of it. Called only
// after the caller has verified a passing quiz score.
func (s *RingService) SkipModule(childID int64, moduleID, quizScore int) (*SkipResult, error) {
	module, ok := curriculum.ModuleByID(moduleID)
	if !ok {
		return nil, ErrModuleNotFound
	}

	if err := s.progressRepo.MarkSkipped(childID, moduleID, quizScore); err != nil {
		return nil, fmt.Errorf("failed to record module skip: %w", err)
	}

	result := &SkipResult{SkippedModule: module}

	next, hasNext := curriculum.NextModule(moduleID, module.Subject)
	if hasNext {
		result.NextModule = &next
	}

	ring, err := s.ringRepo.GetRingByModule(childID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ring for module: %w", err)
	}
	if ring != nil && hasNext {
		if err := s.ringRepo.AdvanceRingModule(ring.ID, next.ID); err != nil {
			return nil, fmt.Errorf("failed to advance ring: %w", err)
		}
		result.RingAdvanced = true
	}

	return result, nil
}
