package payment

type InitiatePaymentResponse struct {
	CheckoutURL   string `json:"checkout_url"`
	TransactionID string `json:"transaction_id"`
}

type VerifyPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}
