package models

// Badge is a named achievement carrying a one-time point grant. Awarding
// appends the badge id to the student's badge set and credits the grant
// exactly once; revoking strips the badge but never claws the points back.
type Badge struct {
	ID          string   `gorm:"primaryKey" json:"id"` // slug of the title
	Title       string   `gorm:"not null" json:"title"`
	Icon        string   `gorm:"size:10" json:"icon"`
	Description string   `gorm:"type:text" json:"description"`
	Currency    Currency `gorm:"type:varchar(4);not null" json:"currency"`
	Value       int64    `gorm:"not null" json:"value"`

	Timestamps
}
