package services

import (
	"fmt"
	"log"
	"time"

	"kasif-platform/models"

	"gorm.io/gorm"
)

// Prayer slots in daily order, with the static Istanbul fallback times used
// until the worker has fetched real ones.
var PrayerSlots = []models.PrayerTime{
	{SlotID: "sabah", Label: "Sabah", Time: "06:00"},
	{SlotID: "ogle", Label: "Öğle", Time: "13:00"},
	{SlotID: "ikindi", Label: "İkindi", Time: "16:30"},
	{SlotID: "aksam", Label: "Akşam", Time: "19:00"},
	{SlotID: "yatsi", Label: "Yatsı", Time: "20:30"},
}

type PrayerService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewPrayerService(db *gorm.DB) *PrayerService {
	return &PrayerService{DB: db, now: time.Now}
}

// applyPrayer writes one prayer-log cell. Cells are write-once: once any
// type is set for a (date, slot) pair the cell is terminal for the day, and
// re-invoking with either type is a no-op. The first write credits NP.
func applyPrayer(s *models.Student, date, slotID string, typ models.PrayerType, now time.Time) (credited int64, err error) {
	if typ != models.PrayerTypeTek && typ != models.PrayerTypeCemaat {
		return 0, ErrMissingField
	}
	key := fmt.Sprintf("%s-%s", date, slotID)
	if s.Prayers == nil {
		s.Prayers = models.PrayerMap{}
	}
	if _, ok := s.Prayers[key]; ok {
		return 0, nil
	}
	points := int64(models.PrayerPointsTek)
	if typ == models.PrayerTypeCemaat {
		points = models.PrayerPointsCemaat
	}
	s.Prayers[key] = models.PrayerEntry{Type: typ, Timestamp: now.UnixMilli()}
	credit(s, points, models.CurrencyNP)
	return points, nil
}

// LogPrayer records today's prayer for one slot and credits NP exactly once
// per cell. Slot eligibility windows are advisory; the log accepts writes
// regardless.
func (s *PrayerService) LogPrayer(studentID, slotID string, typ models.PrayerType) (*models.Student, int64, error) {
	if !validSlot(slotID) {
		return nil, 0, ErrNotFound
	}
	var updated *models.Student
	var credited int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		now := s.now()
		date := now.Format("2006-01-02")
		pts, err := applyPrayer(student, date, slotID, typ, now)
		if err != nil {
			return err
		}
		if pts > 0 {
			if err := tx.Save(student).Error; err != nil {
				return err
			}
			log.Printf("🕌 Prayer logged: %s %s-%s (%s, +%d NP)", student.Username, date, slotID, typ, pts)
		}
		updated, credited = student, pts
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return updated, credited, nil
}

// Times returns the cached slot times, falling back to the static table for
// slots the worker has not fetched yet.
func (s *PrayerService) Times() ([]models.PrayerTime, error) {
	var cached []models.PrayerTime
	if err := s.DB.Find(&cached).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.PrayerTime, len(cached))
	for _, t := range cached {
		byID[t.SlotID] = t
	}
	out := make([]models.PrayerTime, 0, len(PrayerSlots))
	for _, slot := range PrayerSlots {
		if t, ok := byID[slot.SlotID]; ok {
			out = append(out, t)
		} else {
			out = append(out, slot)
		}
	}
	return out, nil
}

// SlotStatus is the advisory eligibility of a slot for the UI.
type SlotStatus string

const (
	SlotLocked  SlotStatus = "locked"  // time not reached yet
	SlotCurrent SlotStatus = "current" // inside this slot's window
	SlotPast    SlotStatus = "past"    // window over, still today's slot
)

// StatusFor computes the advisory window state of each slot against the
// given wall-clock time.
func StatusFor(times []models.PrayerTime, now time.Time) map[string]SlotStatus {
	out := make(map[string]SlotStatus, len(times))
	for i, t := range times {
		start := atClock(now, t.Time)
		var end *time.Time
		if i+1 < len(times) {
			e := atClock(now, times[i+1].Time)
			end = &e
		}
		switch {
		case now.Before(start):
			out[t.SlotID] = SlotLocked
		case end == nil || now.Before(*end):
			out[t.SlotID] = SlotCurrent
		default:
			out[t.SlotID] = SlotPast
		}
	}
	return out
}

func atClock(day time.Time, hhmm string) time.Time {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
}

func validSlot(slotID string) bool {
	for _, s := range PrayerSlots {
		if s.SlotID == slotID {
			return true
		}
	}
	return false
}
