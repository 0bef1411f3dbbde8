package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

type Payment struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	BookingID int64 `gorm:"index;not null" json:"booking_id"`
	UserID    int64 `gorm:"index;not null" json:"user_id"`
	// TxRef correlates the payment with the provider's record. Unique at
	// the store level so concurrent initiations cannot collide.
	TxRef         string        `gorm:"uniqueIndex;size:64;not null" json:"transaction_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `gorm:"size:8" json:"currency"`
	CheckoutURL   string        `gorm:"type:text" json:"checkout_url,omitempty"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	VerifyRawBody string        `gorm:"type:text" json:"-"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
