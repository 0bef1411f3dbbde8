package domain

import "time"

// Review carries a unique (user_id, listing_id) index so a second review
// for the same pair is rejected by the store even under concurrent writers.
type Review struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ListingID int64     `gorm:"not null;uniqueIndex:idx_reviews_user_listing" json:"listing_id" validate:"required"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_reviews_user_listing" json:"user_id"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
