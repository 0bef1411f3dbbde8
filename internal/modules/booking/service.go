package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"staybook/internal/domain"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings bookingRepo
	listings listingPriceReader
}

func NewService(bookings bookingRepo, listings listingPriceReader) *Service {
	return &Service{bookings: bookings, listings: listings}
}

// Create validates the date range, prices the stay and persists the
// booking for the calling user. Any total_price in the request is
// discarded; the stored value is always nights × price_per_night.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	pricePerNight, err := s.listings.GetPriceByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingMissing
		}
		return nil, err
	}

	b := &domain.Booking{
		ListingID: req.ListingID,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Status:    domain.BookingPending,
	}
	b.TotalPrice = totalPrice(pricePerNight, b.Nights())

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List applies the visibility rule: staff see everything, authenticated
// users see their own bookings, anonymous callers see none.
func (s *Service) List(ctx context.Context, userID int64, staff bool, limit, offset int) ([]domain.Booking, error) {
	if staff {
		return s.bookings.ListAll(ctx, limit, offset)
	}
	if userID <= 0 {
		return []domain.Booking{}, nil
	}
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

// Get returns a booking the caller may see. Rows hidden by the
// visibility rule are reported as not found, not as forbidden.
func (s *Service) Get(ctx context.Context, userID int64, staff bool, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !staff && b.UserID != userID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, userID int64, staff bool, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, staff, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		startStr := b.StartDate.Format(dateLayout)
		endStr := b.EndDate.Format(dateLayout)
		if req.StartDate != nil {
			startStr = *req.StartDate
		}
		if req.EndDate != nil {
			endStr = *req.EndDate
		}
		start, end, err := parseRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		b.StartDate, b.EndDate = start, end

		pricePerNight, err := s.listings.GetPriceByID(ctx, b.ListingID)
		if err != nil {
			return nil, err
		}
		b.TotalPrice = totalPrice(pricePerNight, b.Nights())
	}

	if req.Status != nil {
		switch st := domain.BookingStatus(*req.Status); st {
		case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled:
			b.Status = st
		default:
			return nil, ErrInvalidStatus
		}
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, userID int64, staff bool, id int64) error {
	if _, err := s.Get(ctx, userID, staff, id); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return start, end, nil
}

func totalPrice(pricePerNight float64, nights int) float64 {
	total := pricePerNight * float64(nights)
	return math.Round(total*100) / 100
}
