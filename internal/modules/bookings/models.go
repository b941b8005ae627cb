package bookings

import "time"

// Booking reserves a listing for a date range. The unique index over
// (listing, user, start, end) rejects exact-duplicate bookings; overlapping
// ranges are allowed.
type Booking struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ListingID string    `gorm:"type:char(36);not null;uniqueIndex:ux_bookings_tuple,priority:1" json:"listing_id"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_bookings_tuple,priority:2" json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null;uniqueIndex:ux_bookings_tuple,priority:3" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;uniqueIndex:ux_bookings_tuple,priority:4" json:"end_date"`
	Guests    int       `gorm:"not null" json:"guests"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (Booking) TableName() string { return "bookings" }
