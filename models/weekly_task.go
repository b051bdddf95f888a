package models

// WeeklyTask is a catalog entry for the weekly task board. Immutable once
// created except by deletion. Submissions are only accepted on Fridays and
// the reward is credited when an instructor approves the submission.
type WeeklyTask struct {
	ID       string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Reward   int64    `gorm:"not null" json:"reward"`
	Currency Currency `gorm:"type:varchar(4);not null" json:"currency"`
	Target   int      `gorm:"default:1" json:"target"`

	Timestamps
}
