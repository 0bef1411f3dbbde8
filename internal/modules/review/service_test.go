package review

import (
	"context"
	"errors"
	"testing"

	"staybook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil {
		rv.ID = 101
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, listingID, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func TestService_Create_DuplicateIsConflict(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingReader)
	svc := NewService(reviews, listings)

	listings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Listing{ID: 1}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: reviews.user_id, reviews.listing_id"))

	_, err := svc.Create(context.Background(), 7, CreateReviewRequest{ListingID: 1, Rating: 4, Comment: "nice"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Create_RejectsBadRating(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingReader)
	svc := NewService(reviews, listings)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 7, CreateReviewRequest{ListingID: 1, Rating: rating})
		assert.ErrorIs(t, err, ErrValidation, "rating=%d", rating)
	}
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_OwnerOnly(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingReader)
	svc := NewService(reviews, listings)

	reviews.On("GetByID", mock.Anything, int64(9)).Return(&domain.Review{ID: 9, UserID: 7, Rating: 3}, nil)

	rating := 5
	_, err := svc.Update(context.Background(), 8, 9, UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, ErrForbidden)
	reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Delete_OwnerOnly(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingReader)
	svc := NewService(reviews, listings)

	reviews.On("GetByID", mock.Anything, int64(9)).Return(&domain.Review{ID: 9, UserID: 7}, nil)
	reviews.On("Delete", mock.Anything, int64(9)).Return(nil)

	// a different user, even an admin, cannot delete someone else's review
	err := svc.Delete(context.Background(), 8, 9)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), 7, 9)
	assert.NoError(t, err)
}
