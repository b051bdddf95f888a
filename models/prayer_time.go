package models

import "time"

// PrayerTime is the cached wall-clock time of one daily prayer slot,
// refreshed by the prayer-times worker. Slot ids are stable ("sabah",
// "ogle", "ikindi", "aksam", "yatsi"); eligibility windows computed from
// these are advisory for the UI only and never block the underlying log.
type PrayerTime struct {
	SlotID    string    `gorm:"primaryKey" json:"slot_id"`
	Label     string    `gorm:"not null" json:"label"`
	Time      string    `gorm:"not null" json:"time"` // HH:mm local
	FetchedAt time.Time `json:"fetched_at"`
}

// Surah is a static catalog entry for the memorization track.
type Surah struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Number int    `json:"number"`
}
