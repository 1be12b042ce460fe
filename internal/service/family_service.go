package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnloop/internal/credentials"
	"learnloop/internal/models"
	"learnloop/internal/repository"
	"learnloop/internal/security"
	"learnloop/internal/utils"
)

var (
	ErrChildNotFound  = errors.New("child not found")
	ErrNotChildParent = errors.New("child belongs to a different parent")
	ErrInvalidKidPin  = errors.New("invalid family code or PIN")
)

// FamilyService handles child profile management and kid PIN sign-in
type FamilyService struct {
	userRepo  *repository.UserRepository
	childRepo *repository.ChildRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(userRepo *repository.UserRepository, childRepo *repository.ChildRepository) *FamilyService {
	return &FamilyService{
		userRepo:  userRepo,
		childRepo: childRepo,
	}
}

// CreateChild creates a new child profile under a parent. The caller may
// supply a 4-digit PIN; otherwise one is generated. The PIN is returned
// in plaintext exactly once; only the hash is stored.
func (s *FamilyService) CreateChild(parentID int64, name string, age int, grade, avatarEmoji, pin string) (*models.Child, string, error) {
	if err := utils.ValidateName(name); err != nil {
		return nil, "", err
	}
	if err := utils.ValidateAge(age); err != nil {
		return nil, "", err
	}
	if err := utils.ValidateGrade(grade); err != nil {
		return nil, "", err
	}
	if avatarEmoji == "" {
		avatarEmoji = "🧒"
	}

	if pin == "" {
		generated, err := credentials.GeneratePin()
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate PIN: %w", err)
		}
		pin = generated
	} else if err := utils.ValidatePin(pin); err != nil {
		return nil, "", err
	}
	pinHash, err := security.HashPassword(pin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash PIN: %w", err)
	}

	child, err := s.childRepo.CreateChild(parentID, name, age, grade, avatarEmoji, pinHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create child: %w", err)
	}
	return child, pin, nil
}

// GetChild retrieves a child by ID
func (s *FamilyService) GetChild(childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// GetOwnedChild retrieves a child and verifies the parent owns it
func (s *FamilyService) GetOwnedChild(parentID, childID int64) (*models.Child, error) {
	child, err := s.GetChild(childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, ErrNotChildParent
	}
	return child, nil
}

// GetChildren retrieves all of a parent's children
func (s *FamilyService) GetChildren(parentID int64) ([]models.Child, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	return children, nil
}

// UpdateChild updates a child's profile after an ownership check
func (s *FamilyService) UpdateChild(parentID, childID int64, name string, age int, grade, avatarEmoji string) error {
	if _, err := s.GetOwnedChild(parentID, childID); err != nil {
		return err
	}
	if err := utils.ValidateName(name); err != nil {
		return err
	}
	if err := utils.ValidateAge(age); err != nil {
		return err
	}
	if err := utils.ValidateGrade(grade); err != nil {
		return err
	}

	if err := s.childRepo.UpdateChild(childID, name, age, grade, avatarEmoji); err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// RegenerateChildPin generates a new 4-digit PIN for a child and returns
// it in plaintext exactly once.
func (s *FamilyService) RegenerateChildPin(parentID, childID int64) (string, error) {
	if _, err := s.GetOwnedChild(parentID, childID); err != nil {
		return "", err
	}

	pin, err := credentials.GeneratePin()
	if err != nil {
		return "", fmt.Errorf("failed to generate PIN: %w", err)
	}
	pinHash, err := security.HashPassword(pin)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}

	if err := s.childRepo.UpdateChildPin(childID, pinHash); err != nil {
		return "", fmt.Errorf("failed to update PIN: %w", err)
	}
	return pin, nil
}

// DeleteChild removes a child profile after an ownership check
func (s *FamilyService) DeleteChild(parentID, childID int64) error {
	if _, err := s.GetOwnedChild(parentID, childID); err != nil {
		return err
	}
	if err := s.childRepo.DeleteChild(childID); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// KidLogin authenticates a child by family code plus PIN. The family code
// selects the parent account; the PIN is checked against each child of
// that parent so kids never need to know their own numeric ID. Failures
// are reported identically whether the code or the PIN was wrong.
func (s *FamilyService) KidLogin(familyCode, pin string) (*models.KidSession, error) {
	familyCode = strings.ToUpper(strings.TrimSpace(familyCode))
	if familyCode == "" {
		return nil, ErrInvalidKidPin
	}
	if err := utils.ValidatePin(pin); err != nil {
		return nil, ErrInvalidKidPin
	}

	parent, err := s.userRepo.GetUserByFamilyCode(familyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up family code: %w", err)
	}
	if parent == nil {
		return nil, ErrInvalidKidPin
	}

	children, err := s.childRepo.GetChildrenByParent(parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}

	for _, child := range children {
		if child.PinHash != "" && security.CheckPassword(pin, child.PinHash) {
			return &models.KidSession{
				ChildID:     child.ID,
				ChildName:   child.Name,
				AvatarEmoji: child.AvatarEmoji,
				ParentID:    parent.ID,
				LoggedInAt:  time.Now(),
			}, nil
		}
	}
	return nil, ErrInvalidKidPin
}
