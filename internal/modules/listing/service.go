package listing

import (
	"context"
	"errors"

	"staybook/internal/domain"
	"staybook/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	listings listingRepo
}

func NewService(listings listingRepo) *Service {
	return &Service{listings: listings}
}

// Create persists a listing owned by the caller. The host reference comes
// from the authenticated identity, never from the request body.
func (s *Service) Create(ctx context.Context, hostID int64, req CreateListingRequest) (*domain.Listing, error) {
	if hostID <= 0 {
		return nil, ErrForbidden
	}
	if req.PricePerNight <= 0 {
		return nil, ErrValidation
	}

	l := &domain.Listing{
		HostID:        hostID,
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
	}
	if fields := validator.Validate(l); fields != nil {
		return nil, ErrValidation
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Listing, error) {
	return s.listings.List(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, actorID int64, id int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.HostID != actorID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			return nil, ErrValidation
		}
		l.PricePerNight = *req.PricePerNight
	}

	if err := s.listings.Update(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a listing. Admins may delete any listing (moderation);
// hosts only their own.
func (s *Service) Delete(ctx context.Context, actorID int64, actorRole string, id int64) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.HostID != actorID && actorRole != string(domain.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
