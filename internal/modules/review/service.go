package review

import (
	"context"
	"errors"

	"staybook/internal/domain"
	"staybook/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	reviews  reviewRepo
	listings listingReader
}

func NewService(reviews reviewRepo, listings listingReader) *Service {
	return &Service{reviews: reviews, listings: listings}
}

// Create stores a review authored by the caller. The unique index on
// (user_id, listing_id) is the duplicate gate; a violation surfaces as a
// conflict, never as a server fault.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || req.ListingID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	if _, err := s.listings.GetByID(ctx, req.ListingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingMissing
		}
		return nil, err
	}

	rv := &domain.Review{
		ListingID: req.ListingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) List(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error) {
	return s.reviews.List(ctx, listingID, limit, offset)
}

// Update edits a review. Only the author may edit; staff status grants no
// exemption here.
func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != actorID {
		return nil, ErrForbidden
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrValidation
		}
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = *req.Comment
	}

	if err := s.reviews.Update(ctx, rv); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a review, author-only like Update.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != actorID {
		return ErrForbidden
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
