package models

import "github.com/lib/pq"

// Instructor administers one or more class codes (group namespaces).
// Students, market items, announcements and events all hang off those codes.
type Instructor struct {
	ID           string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	ClassCodes   pq.StringArray `gorm:"type:text[]" json:"class_codes"`

	Timestamps
}

// OwnsClassCode reports whether the instructor administers the given code.
func (i *Instructor) OwnsClassCode(code string) bool {
	for _, c := range i.ClassCodes {
		if c == code {
			return true
		}
	}
	return false
}
