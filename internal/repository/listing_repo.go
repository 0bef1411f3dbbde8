package repository

import (
	"context"
	"time"

	"staybook/internal/domain"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

type listingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	HostID        int64     `gorm:"column:host_id"`
	Name          string    `gorm:"column:name"`
	Description   *string   `gorm:"column:description"`
	Location      string    `gorm:"column:location"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (listingModel) TableName() string { return "listings" }

func toDomainListing(m listingModel) *domain.Listing {
	var description string
	if m.Description != nil {
		description = *m.Description
	}
	return &domain.Listing{
		ID:            m.ID,
		HostID:        m.HostID,
		Name:          m.Name,
		Description:   description,
		Location:      m.Location,
		PricePerNight: m.PricePerNight,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toListingModel(l *domain.Listing) listingModel {
	var description *string
	if l.Description != "" {
		v := l.Description
		description = &v
	}
	return listingModel{
		ID:            l.ID,
		HostID:        l.HostID,
		Name:          l.Name,
		Description:   description,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*l = *toDomainListing(m)
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var m listingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainListing(m), nil
}

func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]domain.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []listingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	res := r.db.WithContext(ctx).Model(&listingModel{}).Where("id = ?", l.ID).Updates(map[string]interface{}{
		"name":            m.Name,
		"description":     m.Description,
		"location":        m.Location,
		"price_per_night": m.PricePerNight,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&listingModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetPriceByID returns the nightly price used for total computation.
func (r *ListingRepository) GetPriceByID(ctx context.Context, id int64) (float64, error) {
	var price float64
	tx := r.db.WithContext(ctx).Model(&listingModel{}).Select("price_per_night").Where("id = ?", id).Scan(&price)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return price, nil
}
