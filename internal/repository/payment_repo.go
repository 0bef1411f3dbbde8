package repository

import (
	"context"
	"time"

	"staybook/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByTxRef(ctx context.Context, txRef string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("tx_ref = ?", txRef).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var items []domain.Payment
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

// ApplyVerifiedStatus writes the status reported by the provider. The
// conditional update only touches rows still in pending, so a terminal
// payment is never moved backward and re-verification is idempotent. The
// row as it stands after the update is returned.
func (r *PaymentRepository) ApplyVerifiedStatus(ctx context.Context, txRef string, status domain.PaymentStatus, rawBody string, paidAt *time.Time) (*domain.Payment, error) {
	updates := map[string]interface{}{
		"status":          string(status),
		"verify_raw_body": rawBody,
	}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("tx_ref = ? AND status = ?", txRef, domain.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("tx_ref = ?", txRef).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
