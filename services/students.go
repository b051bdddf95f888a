package services

import (
	"errors"
	"log"

	"kasif-platform/models"
	"kasif-platform/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockStudent reads a student row under FOR UPDATE so every ledger-affecting
// read-modify-write is atomic per record, even with concurrent writers.
func lockStudent(tx *gorm.DB, id string) (*models.Student, error) {
	var s models.Student
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// RequireOwnClass gates instructor mutations to students on the instructor's
// own rosters.
func RequireOwnClass(instructor *models.Instructor, student *models.Student) error {
	if !instructor.OwnsClassCode(student.ClassCode) {
		return ErrForeignClass
	}
	return nil
}

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

// RegistrationInput carries the self-registration form fields.
type RegistrationInput struct {
	Name         string `json:"name" validate:"required"`
	Username     string `json:"username" validate:"required,min=2"`
	Password     string `json:"password" validate:"required,min=1"`
	ClassCode    string `json:"class_code" validate:"required"`
	ParentPhone  string `json:"parent_phone" validate:"required"`
	StudentPhone string `json:"student_phone"`
	Address      string `json:"address"`
	School       string `json:"school"`
}

// applyRegistration runs the gate checks and builds the record: pending
// status (approved when autoApprove), zero balances, empty collections. An
// unknown class code or taken username means no record at all.
func applyRegistration(in RegistrationInput, username, passwordHash string, codeOwned, usernameTaken, autoApprove bool) (*models.Student, error) {
	if !codeOwned {
		return nil, ErrUnknownClassCode
	}
	if usernameTaken {
		return nil, ErrUsernameTaken
	}
	status := models.StudentStatusPending
	if autoApprove {
		status = models.StudentStatusApproved
	}
	return &models.Student{
		Name:           in.Name,
		Username:       username,
		PasswordHash:   passwordHash,
		Group:          "Kaşif Grubu",
		Status:         status,
		ClassCode:      in.ClassCode,
		ParentPhone:    in.ParentPhone,
		StudentPhone:   in.StudentPhone,
		Address:        in.Address,
		School:         in.School,
		Inventory:      []string{},
		Badges:         []string{},
		CompletedTasks: []string{},
		PendingTasks:   []string{},
		PendingItems:   models.PendingItemList{},
		Attendance:     models.StatusMap{},
		Reading:        models.StatusMap{},
		Memorization:   models.StatusMap{},
		Prayers:        models.PrayerMap{},
	}, nil
}

// Register creates a student in pending status with zero balances and empty
// collections. The class code must belong to some instructor; otherwise the
// record is never created. autoApprove is set for instructor-initiated
// registrations, which bypass the approval gate.
func (s *StudentService) Register(in RegistrationInput, autoApprove bool) (*models.Student, error) {
	username := utils.NormalizeUsername(in.Username)

	var codeOwners int64
	if err := s.DB.Model(&models.Instructor{}).
		Where("? = ANY(class_codes)", in.ClassCode).
		Count(&codeOwners).Error; err != nil {
		return nil, err
	}

	var taken int64
	if err := s.DB.Model(&models.Student{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student, err := applyRegistration(in, username, string(hash), codeOwners > 0, taken > 0, autoApprove)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Create(student).Error; err != nil {
		return nil, err
	}
	log.Printf("📝 Student registered: %s (class %s, status %s)", username, in.ClassCode, student.Status)
	return student, nil
}

// Approve flips a pending student to approved. No other side effect.
func (s *StudentService) Approve(studentID string) error {
	res := s.DB.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("status", models.StudentStatusApproved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reject deletes a pending registration outright. Irreversible.
func (s *StudentService) Reject(studentID string) error {
	return s.Delete(studentID)
}

// Delete removes a student record and everything on it.
func (s *StudentService) Delete(studentID string) error {
	res := s.DB.Unscoped().Delete(&models.Student{}, "id = ?", studentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileUpdate carries the instructor's edit form. Nil fields are left as-is.
type ProfileUpdate struct {
	Name         *string `json:"name"`
	Password     *string `json:"password"`
	ParentPhone  *string `json:"parent_phone"`
	StudentPhone *string `json:"student_phone"`
	Address      *string `json:"address"`
	School       *string `json:"school"`
}

func (s *StudentService) UpdateProfile(studentID string, upd ProfileUpdate) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		if upd.Name != nil {
			if *upd.Name == "" {
				return ErrMissingField
			}
			student.Name = *upd.Name
		}
		if upd.Password != nil {
			if *upd.Password == "" {
				return ErrMissingField
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			student.PasswordHash = string(hash)
		}
		if upd.ParentPhone != nil {
			student.ParentPhone = *upd.ParentPhone
		}
		if upd.StudentPhone != nil {
			student.StudentPhone = *upd.StudentPhone
		}
		if upd.Address != nil {
			student.Address = *upd.Address
		}
		if upd.School != nil {
			student.School = *upd.School
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

// SetProgressStatus writes one attendance or reading cell, keyed by date.
func (s *StudentService) SetProgressStatus(studentID, track, key, value string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		switch track {
		case "attendance":
			if student.Attendance == nil {
				student.Attendance = models.StatusMap{}
			}
			student.Attendance[key] = value
		case "reading":
			if student.Reading == nil {
				student.Reading = models.StatusMap{}
			}
			student.Reading[key] = value
		case "memorization":
			if student.Memorization == nil {
				student.Memorization = models.StatusMap{}
			}
			student.Memorization[key] = value
		default:
			return ErrMissingField
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

// SetReadingAssignment sets or clears the student's current assignment text.
func (s *StudentService) SetReadingAssignment(studentID, assignment string) error {
	res := s.DB.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("reading_assignment", assignment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreditGameScore adds a mini-game result to the GP balance. Zero or
// negative scores are ignored.
func (s *StudentService) CreditGameScore(studentID string, score int64) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		if score > 0 {
			credit(student, score, models.CurrencyGP)
			if err := tx.Save(student).Error; err != nil {
				return err
			}
			log.Printf("🎮 Game score credited: %s +%d GP", student.Username, score)
		}
		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns one student by id.
func (s *StudentService) Get(studentID string) (*models.Student, error) {
	var student models.Student
	if err := s.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// ListByClassCodes returns all students in an instructor's classes.
func (s *StudentService) ListByClassCodes(classCodes []string) ([]models.Student, error) {
	var students []models.Student
	err := s.DB.Where("class_code IN ?", classCodes).Order("name ASC").Find(&students).Error
	return students, err
}

// ListAll returns every student (admin export surface).
func (s *StudentService) ListAll() ([]models.Student, error) {
	var students []models.Student
	err := s.DB.Order("class_code ASC, name ASC").Find(&students).Error
	return students, err
}
