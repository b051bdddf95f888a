package services

import (
	"log"
	"time"

	"kasif-platform/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CommunityService manages announcements, scheduled events and weekly
// reports. No ledger effects anywhere in here.
type CommunityService struct {
	DB *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{DB: db}
}

// --- Announcements ---

func (s *CommunityService) CreateAnnouncement(a *models.Announcement) error {
	if a.Title == "" || a.ClassCode == "" {
		return ErrMissingField
	}
	if a.Date == "" {
		a.Date = time.Now().Format("02.01.2006")
	}
	return s.DB.Create(a).Error
}

func (s *CommunityService) DeleteAnnouncement(id string) error {
	res := s.DB.Delete(&models.Announcement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CommunityService) ListAnnouncements(classCode string) ([]models.Announcement, error) {
	var out []models.Announcement
	err := s.DB.Where("class_code = ?", classCode).Order("created_at DESC").Find(&out).Error
	return out, err
}

// --- Events ---

func (s *CommunityService) CreateEvent(e *models.AppEvent) error {
	if e.Title == "" || e.Date == "" || e.ClassCode == "" {
		return ErrMissingField
	}
	return s.DB.Create(e).Error
}

func (s *CommunityService) DeleteEvent(id string) error {
	res := s.DB.Delete(&models.AppEvent{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEventsForStudent returns the student's class events plus global ones.
func (s *CommunityService) ListEventsForStudent(classCode string) ([]models.AppEvent, error) {
	var out []models.AppEvent
	err := s.DB.Where("class_code = ? OR class_code = ?", classCode, models.GlobalClassCode).
		Order("date ASC, time ASC").
		Find(&out).Error
	return out, err
}

func (s *CommunityService) ListEvents(classCodes []string) ([]models.AppEvent, error) {
	var out []models.AppEvent
	err := s.DB.Where("class_code IN ?", classCodes).Order("date ASC, time ASC").Find(&out).Error
	return out, err
}

func (s *CommunityService) ListGlobalEvents() ([]models.AppEvent, error) {
	return s.ListEvents([]string{models.GlobalClassCode})
}

// StartEventCleanupScheduler removes events whose date has passed, once a
// day.
func (s *CommunityService) StartEventCleanupScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Format("2006-01-02")
			res := s.DB.Where("date < ?", cutoff).Delete(&models.AppEvent{})
			if res.Error != nil {
				log.Printf("[Scheduler] Event cleanup DB error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 Removed %d past event(s)", res.RowsAffected)
			}
		}),
	)
}

// --- Weekly reports ---

func (s *CommunityService) SubmitReport(r *models.WeeklyReport) error {
	if r.InstructorID == "" {
		return ErrMissingField
	}
	if r.ReportDate == "" {
		r.ReportDate = time.Now().Format("2006-01-02")
	}
	return s.DB.Create(r).Error
}

func (s *CommunityService) ListReports() ([]models.WeeklyReport, error) {
	var out []models.WeeklyReport
	err := s.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}
