package listing

import (
	"context"

	"staybook/internal/domain"
)

type listingRepo interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, limit, offset int) ([]domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id int64) error
}
