package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staybook/internal/domain"
	"staybook/internal/gateway/chapa"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options carries the provider-facing settings the service needs to build
// checkout requests.
type Options struct {
	Currency    string
	CallbackURL string
	ReturnURL   string
}

type Service struct {
	payments paymentRepo
	bookings bookingReader
	users    userReader
	gateway  gatewayClient
	opts     Options
}

func NewService(payments paymentRepo, bookings bookingReader, users userReader, gateway gatewayClient, opts Options) *Service {
	if opts.Currency == "" {
		opts.Currency = "ETB"
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		users:    users,
		gateway:  gateway,
		opts:     opts,
	}
}

// ListAll returns payments for reconciliation, newest first, optionally
// filtered by status. Callers are expected to be staff.
func (s *Service) ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Payment, error) {
	if status != "" {
		switch domain.PaymentStatus(status) {
		case domain.PaymentPending, domain.PaymentCompleted, domain.PaymentFailed:
		default:
			return nil, ErrValidation
		}
	}
	return s.payments.List(ctx, status, limit, offset)
}

// Initiate starts a checkout for a booking the caller owns. A booking
// that doesn't exist or belongs to someone else is reported as not found
// either way, so the endpoint doesn't leak other users' booking IDs.
// Nothing is persisted unless the provider accepted the transaction.
func (s *Service) Initiate(ctx context.Context, userID, bookingID int64) (*InitiatePaymentResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	txRef := newTxRef()
	checkoutURL, err := s.gateway.Initialize(ctx, chapa.InitializeRequest{
		Amount:      fmt.Sprintf("%.2f", b.TotalPrice),
		Currency:    s.opts.Currency,
		Email:       u.Email,
		FirstName:   firstName(u.Name),
		LastName:    lastName(u.Name),
		TxRef:       txRef,
		CallbackURL: s.opts.CallbackURL,
		ReturnURL:   s.opts.ReturnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	p := &domain.Payment{
		BookingID:   b.ID,
		UserID:      userID,
		TxRef:       txRef,
		Amount:      b.TotalPrice,
		Currency:    s.opts.Currency,
		CheckoutURL: checkoutURL,
		Status:      domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	return &InitiatePaymentResponse{CheckoutURL: checkoutURL, TransactionID: txRef}, nil
}

// Verify asks the provider for the transaction's ground truth and applies
// it to the payment. The client-asserted state is never trusted. Calling
// this again for a settled payment re-applies the same mapping, so the
// result is idempotent; terminal states are never rolled back.
func (s *Service) Verify(ctx context.Context, txRef string) (*VerifyPaymentResponse, error) {
	vd, err := s.gateway.Verify(ctx, txRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	if _, err := s.payments.GetByTxRef(ctx, txRef); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	status := mapProviderStatus(vd.Status)
	var paidAt *time.Time
	if status == domain.PaymentCompleted {
		now := time.Now().UTC()
		paidAt = &now
	}

	p, err := s.payments.ApplyVerifiedStatus(ctx, txRef, status, vd.RawBody, paidAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return &VerifyPaymentResponse{TransactionID: p.TxRef, Status: string(p.Status)}, nil
}

// mapProviderStatus translates the provider's reported status onto the
// payment state machine: success settles, failed and cancelled fail,
// anything else stays pending.
func mapProviderStatus(providerStatus string) domain.PaymentStatus {
	switch strings.ToLower(providerStatus) {
	case "success":
		return domain.PaymentCompleted
	case "failed", "cancelled":
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}

func newTxRef() string {
	return "tx-" + uuid.NewString()
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func lastName(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}
