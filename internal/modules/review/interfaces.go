package review

import (
	"context"

	"staybook/internal/domain"
)

type reviewRepo interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error)
	Update(ctx context.Context, rv *domain.Review) error
	Delete(ctx context.Context, id int64) error
}

type listingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}
