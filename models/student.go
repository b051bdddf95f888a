package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Currency is one of the two point currencies students earn.
type Currency string

const (
	CurrencyGP Currency = "GP" // general points (tasks, games, badges)
	CurrencyNP Currency = "NP" // namaz points (prayer logging)
)

// StudentStatus gates self-registered students behind instructor approval.
type StudentStatus string

const (
	StudentStatusPending  StudentStatus = "pending"
	StudentStatusApproved StudentStatus = "approved"
)

// PrayerType distinguishes praying alone from praying in congregation.
type PrayerType string

const (
	PrayerTypeTek    PrayerType = "tek"
	PrayerTypeCemaat PrayerType = "cemaat"
)

// NP credited per logged prayer.
const (
	PrayerPointsTek    = 10
	PrayerPointsCemaat = 20
)

// PrayerEntry is one write-once cell of the prayer log, keyed by
// "{YYYY-MM-DD}-{slotID}" in Student.Prayers.
type PrayerEntry struct {
	Type      PrayerType `json:"type"`
	Timestamp int64      `json:"timestamp"`
}

// PendingItem is an in-flight marketplace transaction. Price and currency are
// snapshotted at purchase time so later catalog edits don't affect it.
// Created on purchase, removed exactly once by approval or rejection.
type PendingItem struct {
	ID        string   `json:"id"`
	ItemID    string   `json:"item_id"`
	ItemTitle string   `json:"item_title"`
	Price     int64    `json:"price"`
	Currency  Currency `json:"currency"`
	Timestamp int64    `json:"timestamp"`
}

// StatusMap holds per-key enum statuses (attendance/reading by date,
// memorization by surah id).
type StatusMap map[string]string

// PrayerMap holds the prayer log cells.
type PrayerMap map[string]PrayerEntry

// PendingItemList is the jsonb list of in-flight purchases.
type PendingItemList []PendingItem

// Student is one registered participant. Balances never go negative: every
// debit path checks sufficiency first, inside the same transaction.
type Student struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string        `gorm:"not null" json:"-"`
	Group        string        `gorm:"column:group_name" json:"group"`
	Status       StudentStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	ClassCode    string        `gorm:"index;not null" json:"class_code"`

	ParentPhone  string `json:"parent_phone,omitempty"`
	StudentPhone string `json:"student_phone,omitempty"`
	Address      string `json:"address,omitempty"`
	School       string `json:"school,omitempty"`

	Points      int64 `gorm:"default:0" json:"points"`
	NamazPoints int64 `gorm:"default:0" json:"namaz_points"`

	Inventory      pq.StringArray `gorm:"type:text[]" json:"inventory"`
	Badges         pq.StringArray `gorm:"type:text[]" json:"badges"` // insertion order = award order
	CompletedTasks pq.StringArray `gorm:"type:text[]" json:"completed_tasks"`
	PendingTasks   pq.StringArray `gorm:"type:text[]" json:"pending_tasks"`

	PendingItems PendingItemList `gorm:"type:jsonb;serializer:json" json:"pending_items"`

	Attendance   StatusMap `gorm:"type:jsonb;serializer:json" json:"attendance"`
	Reading      StatusMap `gorm:"type:jsonb;serializer:json" json:"reading"`
	Memorization StatusMap `gorm:"type:jsonb;serializer:json" json:"memorization"`
	Prayers      PrayerMap `gorm:"type:jsonb;serializer:json" json:"prayers"`

	ReadingAssignment string `json:"reading_assignment,omitempty"`

	Timestamps
}

// Balance returns the student's balance in the given currency.
func (s *Student) Balance(cur Currency) int64 {
	if cur == CurrencyNP {
		return s.NamazPoints
	}
	return s.Points
}

// HasBadge reports whether the badge was already awarded.
func (s *Student) HasBadge(badgeID string) bool {
	for _, id := range s.Badges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// PendingItemFor returns the in-flight purchase for a catalog item, if any.
func (s *Student) PendingItemFor(itemID string) *PendingItem {
	for i := range s.PendingItems {
		if s.PendingItems[i].ItemID == itemID {
			return &s.PendingItems[i]
		}
	}
	return nil
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
