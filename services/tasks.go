package services

import (
	"errors"
	"log"
	"time"

	"kasif-platform/models"

	"gorm.io/gorm"
)

type TaskService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db, now: time.Now}
}

// applySubmit moves a task to the pending set. Submissions are only accepted
// on Fridays; completed or already-pending tasks are rejected with the
// specific reason. No points move at submission time.
func applySubmit(s *models.Student, taskID string, weekday time.Weekday) error {
	if weekday != time.Friday {
		return ErrWrongWeekday
	}
	if containsID(s.CompletedTasks, taskID) {
		return ErrTaskAlreadyDone
	}
	if containsID(s.PendingTasks, taskID) {
		return ErrTaskAlreadyPending
	}
	s.PendingTasks = append(s.PendingTasks, taskID)
	return nil
}

// applyApprove moves pending → completed and credits the reward exactly
// once. A task not in the pending set cannot be approved, so re-approving a
// resolved submission is impossible.
func applyApprove(s *models.Student, task *models.WeeklyTask) error {
	if !containsID(s.PendingTasks, task.ID) {
		return ErrNotFound
	}
	s.PendingTasks = removeID(s.PendingTasks, task.ID)
	s.CompletedTasks = append(s.CompletedTasks, task.ID)
	credit(s, task.Reward, task.Currency)
	return nil
}

// applyReject returns pending → none. Nothing was credited at submission,
// so there is no ledger effect.
func applyReject(s *models.Student, taskID string) error {
	if !containsID(s.PendingTasks, taskID) {
		return ErrNotFound
	}
	s.PendingTasks = removeID(s.PendingTasks, taskID)
	return nil
}

// Submit sends a task for instructor approval.
func (s *TaskService) Submit(studentID, taskID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		var task models.WeeklyTask
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := applySubmit(student, task.ID, s.now().Weekday()); err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated = student
		log.Printf("📋 Task submitted: %s → %s", student.Username, task.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Approve confirms a pending submission and credits the reward.
func (s *TaskService) Approve(studentID, taskID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		var task models.WeeklyTask
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := applyApprove(student, &task); err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated = student
		log.Printf("✅ Task approved: %s → %s (+%d %s)", student.Username, task.Title, task.Reward, task.Currency)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Reject drops a pending submission without any ledger effect.
func (s *TaskService) Reject(studentID, taskID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		if err := applyReject(student, taskID); err != nil {
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

func (s *TaskService) Create(task *models.WeeklyTask) error {
	if task.Title == "" || task.Reward <= 0 {
		return ErrMissingField
	}
	if task.Currency == "" {
		task.Currency = models.CurrencyGP
	}
	if task.Target <= 0 {
		task.Target = 1
	}
	return s.DB.Create(task).Error
}

func (s *TaskService) Delete(taskID string) error {
	res := s.DB.Delete(&models.WeeklyTask{}, "id = ?", taskID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskService) List() ([]models.WeeklyTask, error) {
	var tasks []models.WeeklyTask
	err := s.DB.Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
