package services

import (
	"errors"
	"log"

	"kasif-platform/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// applyAward grants a badge and its one-time point value. Duplicate awards
// are refused before any ledger effect.
func applyAward(s *models.Student, badge *models.Badge) error {
	if s.HasBadge(badge.ID) {
		return ErrBadgeAlreadyHeld
	}
	s.Badges = append(s.Badges, badge.ID)
	credit(s, badge.Value, badge.Currency)
	return nil
}

// applyRevoke strips a badge from the set. The points stay: once monetized,
// a badge keeps its monetary effect even if socially revoked.
func applyRevoke(s *models.Student, badgeID string) error {
	if !s.HasBadge(badgeID) {
		return ErrNotFound
	}
	s.Badges = removeID(s.Badges, badgeID)
	return nil
}

// Award gives a badge to a student and credits its value exactly once.
func (s *BadgeService) Award(studentID, badgeID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		var badge models.Badge
		if err := tx.First(&badge, "id = ?", badgeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := applyAward(student, &badge); err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated = student
		log.Printf("🎖️ Badge awarded: %s → %s (+%d %s)", badge.Title, student.Username, badge.Value, badge.Currency)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Revoke removes a badge without debiting the previously granted points.
func (s *BadgeService) Revoke(studentID, badgeID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		if err := applyRevoke(student, badgeID); err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// --- Catalog management ---

func (s *BadgeService) Create(badge *models.Badge) error {
	if badge.Title == "" || badge.Value <= 0 {
		return ErrMissingField
	}
	if badge.ID == "" {
		badge.ID = slug.Make(badge.Title)
	}
	if badge.Currency == "" {
		badge.Currency = models.CurrencyGP
	}
	return s.DB.Create(badge).Error
}

func (s *BadgeService) Delete(badgeID string) error {
	res := s.DB.Delete(&models.Badge{}, "id = ?", badgeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BadgeService) List() ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Order("created_at ASC").Find(&badges).Error
	return badges, err
}
