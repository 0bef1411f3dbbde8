package booking

import (
	"context"
	"testing"

	"staybook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListingPrices struct {
	mock.Mock
}

func (m *MockListingPrices) GetPriceByID(ctx context.Context, id int64) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

func TestService_Create_ComputesTotalPrice(t *testing.T) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingPrices)
	svc := NewService(bookings, listings)

	listings.On("GetPriceByID", mock.Anything, int64(1)).Return(100.0, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	clientPrice := 1.0
	b, err := svc.Create(context.Background(), 42, CreateBookingRequest{
		ListingID:  1,
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-04",
		TotalPrice: &clientPrice, // must be ignored
	})

	assert.NoError(t, err)
	assert.Equal(t, 300.0, b.TotalPrice)
	assert.Equal(t, int64(42), b.UserID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 3, b.Nights())
	bookings.AssertExpectations(t)
}

func TestService_Create_RejectsInvalidRange(t *testing.T) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingPrices)
	svc := NewService(bookings, listings)

	for _, tc := range []struct{ start, end string }{
		{"2024-01-04", "2024-01-01"}, // reversed
		{"2024-01-01", "2024-01-01"}, // zero nights
		{"not-a-date", "2024-01-04"},
	} {
		_, err := svc.Create(context.Background(), 42, CreateBookingRequest{
			ListingID: 1,
			StartDate: tc.start,
			EndDate:   tc.end,
		})
		assert.ErrorIs(t, err, ErrValidation, "start=%s end=%s", tc.start, tc.end)
	}
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_List_Visibility(t *testing.T) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingPrices)
	svc := NewService(bookings, listings)

	all := []domain.Booking{{ID: 1, UserID: 7}, {ID: 2, UserID: 8}}
	own := []domain.Booking{{ID: 1, UserID: 7}}

	bookings.On("ListAll", mock.Anything, 0, 0).Return(all, nil)
	bookings.On("ListByUser", mock.Anything, int64(7), 0, 0).Return(own, nil)

	got, err := svc.List(context.Background(), 99, true, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(context.Background(), 7, false, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.List(context.Background(), 0, false, 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, got)
	bookings.AssertNotCalled(t, "ListByUser", mock.Anything, int64(0), 0, 0)
}

func TestService_Get_HidesForeignBookings(t *testing.T) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingPrices)
	svc := NewService(bookings, listings)

	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{ID: 5, UserID: 8}, nil)

	_, err := svc.Get(context.Background(), 7, false, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	b, err := svc.Get(context.Background(), 99, true, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), b.ID)
}

func TestService_Update_RecomputesPriceOnDateChange(t *testing.T) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingPrices)
	svc := NewService(bookings, listings)

	existing := &domain.Booking{ID: 5, ListingID: 1, UserID: 7, TotalPrice: 300}
	existing.StartDate, existing.EndDate, _ = parseRange("2024-01-01", "2024-01-04")

	bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	listings.On("GetPriceByID", mock.Anything, int64(1)).Return(100.0, nil)
	bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.TotalPrice == 500.0
	})).Return(nil)

	end := "2024-01-06"
	_, err := svc.Update(context.Background(), 7, false, 5, UpdateBookingRequest{EndDate: &end})
	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestService_Update_RejectsUnknownStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingPrices)
	svc := NewService(bookings, listings)

	existing := &domain.Booking{ID: 5, ListingID: 1, UserID: 7}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)

	status := "shipped"
	_, err := svc.Update(context.Background(), 7, false, 5, UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
