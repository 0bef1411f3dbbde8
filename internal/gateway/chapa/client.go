// Package chapa is a thin HTTP client for the Chapa payment provider.
// It covers the two calls the backend needs: transaction initialize and
// transaction verify.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	initializePath = "/v1/transaction/initialize"
	verifyPath     = "/v1/transaction/verify/"
)

// ProviderError is returned when the provider answers with a non-success
// envelope, an unexpected HTTP status or a body that cannot be decoded.
// Payload keeps the raw provider response for the error surface.
type ProviderError struct {
	HTTPStatus int
	Payload    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("chapa: provider returned status %d: %s", e.HTTPStatus, e.Payload)
}

type Client struct {
	baseURL   string
	secretKey string
	httpc     *http.Client
}

func New(baseURL, secretKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpc:     &http.Client{Timeout: timeout},
	}
}

type InitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize creates a checkout session and returns the redirect URL.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("chapa: encode initialize request: %w", err)
	}

	data, _, err := c.do(ctx, http.MethodPost, c.baseURL+initializePath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var out struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.CheckoutURL == "" {
		return "", &ProviderError{HTTPStatus: http.StatusOK, Payload: string(data)}
	}
	return out.CheckoutURL, nil
}

type VerifyData struct {
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	TxRef    string  `json:"tx_ref"`

	// RawBody is the provider response as received, kept for audit.
	RawBody string `json:"-"`
}

// Verify asks the provider for the ground-truth state of a transaction.
// The reported status is returned as-is; mapping it onto the payment
// state machine is the caller's concern.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyData, error) {
	data, raw, err := c.do(ctx, http.MethodGet, c.baseURL+verifyPath+txRef, nil)
	if err != nil {
		return nil, err
	}

	var out VerifyData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &ProviderError{HTTPStatus: http.StatusOK, Payload: raw}
	}
	out.RawBody = raw
	return &out, nil
}

// do performs the request and unwraps the provider envelope. It returns
// the envelope data plus the raw response body.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, "", fmt.Errorf("chapa: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("chapa: call provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("chapa: read provider response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, "", &ProviderError{HTTPStatus: resp.StatusCode, Payload: string(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", &ProviderError{HTTPStatus: resp.StatusCode, Payload: string(raw)}
	}
	if env.Status != "success" {
		return nil, "", &ProviderError{HTTPStatus: resp.StatusCode, Payload: string(raw)}
	}
	return env.Data, string(raw), nil
}
