package listings

import "time"

type Listing struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	Location       string    `gorm:"type:varchar(255);not null" json:"location"`
	PricePerNight  int64     `gorm:"not null" json:"price_per_night_cents"`
	Currency       string    `gorm:"type:char(3);not null;default:'ETB'" json:"currency"`
	OwnerID        string    `gorm:"type:char(36);not null;index:ix_listings_owner_id" json:"owner_id"`
	CreatedAt      time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (Listing) TableName() string { return "listings" }

// Review is a per-user rating of a listing; one review per (listing, user).
type Review struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ListingID string    `gorm:"type:char(36);not null;uniqueIndex:ux_reviews_listing_user,priority:1" json:"listing_id"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_reviews_listing_user,priority:2" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
