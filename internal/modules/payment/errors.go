package payment

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrGateway         = errors.New("payment gateway error")
)
