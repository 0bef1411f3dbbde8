package payment

import (
	"context"
	"time"

	"staybook/internal/domain"
	"staybook/internal/gateway/chapa"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByTxRef(ctx context.Context, txRef string) (*domain.Payment, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Payment, error)
	ApplyVerifiedStatus(ctx context.Context, txRef string, status domain.PaymentStatus, rawBody string, paidAt *time.Time) (*domain.Payment, error)
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type gatewayClient interface {
	Initialize(ctx context.Context, req chapa.InitializeRequest) (string, error)
	Verify(ctx context.Context, txRef string) (*chapa.VerifyData, error)
}
