package models

// MarketItem is a catalog entry students can redeem points for, scoped to a
// class code. Stock is decremented only when an instructor approves a
// purchase, never at purchase time — a purchase only reserves via a
// PendingItem snapshot on the student record.
type MarketItem struct {
	ID          string   `gorm:"primaryKey" json:"id"` // slug of the title, e.g. "kantin-ceki"
	Title       string   `gorm:"not null" json:"title"`
	Price       int64    `gorm:"not null" json:"price"`
	Currency    Currency `gorm:"type:varchar(4);not null" json:"currency"`
	Icon        string   `gorm:"size:10" json:"icon"`
	Description string   `gorm:"type:text" json:"description"`
	Stock       int      `gorm:"not null;default:0" json:"stock"`
	ClassCode   string   `gorm:"index;not null" json:"class_code"`

	Timestamps
}
