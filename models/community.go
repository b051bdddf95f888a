package models

// Announcement is a class-scoped broadcast message.
type Announcement struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Message   string `gorm:"type:text" json:"message"`
	Date      string `json:"date"` // DD.MM.YYYY, display form
	ClassCode string `gorm:"index;not null" json:"class_code"`

	Timestamps
}

// GlobalClassCode marks events visible to every class.
const GlobalClassCode = "GLOBAL"

// AppEvent is a scheduled activity, either class-scoped (instructor) or
// global (admin).
type AppEvent struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Date        string `gorm:"not null" json:"date"` // YYYY-MM-DD
	Time        string `json:"time"`                 // HH:mm
	Location    string `json:"location"`
	ClassCode   string `gorm:"index;not null" json:"class_code"`
	CreatedBy   string `gorm:"type:varchar(16)" json:"created_by"` // "admin" or "instructor"

	Timestamps
}

// WeeklyReport is an instructor's record of whether the weekly meeting was
// held, submitted for admin review.
type WeeklyReport struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	InstructorID   string `gorm:"index;not null" json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	ReportDate     string `gorm:"not null" json:"report_date"` // YYYY-MM-DD
	IsHeld         bool   `json:"is_held"`
	AttendeeCount  int    `json:"attendee_count"`
	Location       string `json:"location"`
	Notes          string `gorm:"type:text" json:"notes"`

	Timestamps
}
