package services

import (
	"errors"
	"log"
	"os"

	"kasif-platform/models"
	"kasif-platform/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService answers lookup-by-credentials per role. Login is tri-state:
// success with record, ErrWrongCredentials, or ErrNotApproved for pending
// students whose records exist but cannot enter gameplay yet.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// studentLoginState resolves the tri-state outcome for a loaded student:
// wrong password, pending approval, or success. The password is always
// checked first so a pending account can't be probed with wrong credentials.
func studentLoginState(student *models.Student, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)) != nil {
		return ErrWrongCredentials
	}
	if student.Status == models.StudentStatusPending {
		return ErrNotApproved
	}
	return nil
}

// LoginStudent authenticates a student.
func (s *AuthService) LoginStudent(username, password string) (*models.Student, error) {
	var student models.Student
	err := s.DB.First(&student, "username = ?", utils.NormalizeUsername(username)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}
	if err := studentLoginState(&student, password); err != nil {
		return nil, err
	}
	return &student, nil
}

// LoginInstructor authenticates an instructor.
func (s *AuthService) LoginInstructor(username, password string) (*models.Instructor, error) {
	var instructor models.Instructor
	err := s.DB.First(&instructor, "username = ?", utils.NormalizeUsername(username)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(instructor.PasswordHash), []byte(password)) != nil {
		return nil, ErrWrongCredentials
	}
	return &instructor, nil
}

// LoginAdmin checks the single admin credential pair from the environment.
func (s *AuthService) LoginAdmin(username, password string) error {
	adminUser := os.Getenv("ADMIN_USERNAME")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminUser == "" || adminPass == "" {
		return ErrWrongCredentials
	}
	if username != adminUser || password != adminPass {
		return ErrWrongCredentials
	}
	return nil
}

// --- Instructor management (admin surface) ---

type InstructorInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisterInstructor creates an instructor with no class codes yet.
func (s *AuthService) RegisterInstructor(in InstructorInput) (*models.Instructor, error) {
	username := utils.NormalizeUsername(in.Username)

	var taken int64
	if err := s.DB.Model(&models.Instructor{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	instructor := &models.Instructor{
		Name:         in.Name,
		Username:     username,
		PasswordHash: string(hash),
		ClassCodes:   []string{},
	}
	if err := s.DB.Create(instructor).Error; err != nil {
		return nil, err
	}
	log.Printf("👤 Instructor registered: %s", username)
	return instructor, nil
}

// DeleteInstructor removes the account. Students and content under its class
// codes are left in place; orphaned codes simply stop accepting new
// registrations.
func (s *AuthService) DeleteInstructor(instructorID string) error {
	res := s.DB.Unscoped().Delete(&models.Instructor{}, "id = ?", instructorID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddClassCode assigns a new class code to an instructor. Codes are unique
// across all instructors.
func (s *AuthService) AddClassCode(instructorID, code string) (*models.Instructor, error) {
	if code == "" {
		return nil, ErrMissingField
	}
	var updated *models.Instructor
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&models.Instructor{}).
			Where("? = ANY(class_codes)", code).
			Count(&owners).Error; err != nil {
			return err
		}
		if owners > 0 {
			return ErrClassCodeTaken
		}
		var instructor models.Instructor
		if err := tx.First(&instructor, "id = ?", instructorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		instructor.ClassCodes = append(instructor.ClassCodes, code)
		if err := tx.Save(&instructor).Error; err != nil {
			return err
		}
		updated = &instructor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveClassCode drops a code from an instructor. Existing students keep
// the code on their records.
func (s *AuthService) RemoveClassCode(instructorID, code string) (*models.Instructor, error) {
	var updated *models.Instructor
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var instructor models.Instructor
		if err := tx.First(&instructor, "id = ?", instructorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		instructor.ClassCodes = removeID(instructor.ClassCodes, code)
		if err := tx.Save(&instructor).Error; err != nil {
			return err
		}
		updated = &instructor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetInstructor returns one instructor by id.
func (s *AuthService) GetInstructor(instructorID string) (*models.Instructor, error) {
	var instructor models.Instructor
	if err := s.DB.First(&instructor, "id = ?", instructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &instructor, nil
}

// ListInstructors returns all instructor accounts (admin surface).
func (s *AuthService) ListInstructors() ([]models.Instructor, error) {
	var instructors []models.Instructor
	err := s.DB.Order("name ASC").Find(&instructors).Error
	return instructors, err
}
