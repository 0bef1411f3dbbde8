package domain

import "time"

type Listing struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	HostID        int64     `gorm:"index;not null" json:"host_id"`
	Name          string    `json:"name" validate:"required"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"price_per_night" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
