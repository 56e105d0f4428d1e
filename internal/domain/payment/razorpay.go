// internal/domain/payment/razorpay.go
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/domain/order"
)

// ErrGatewayNotConfigured is returned when no API keys are set
var ErrGatewayNotConfigured = errors.New("payment gateway credentials not configured")

// createOrderRequest is the body of POST /orders
type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// razorpayOrder is the gateway's order resource
type razorpayOrder struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// RazorpayGateway talks to the Razorpay orders API
type RazorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	currency   string
	httpClient *http.Client
}

// NewRazorpayGateway creates a gateway from configuration
func NewRazorpayGateway(cfg *config.Config) *RazorpayGateway {
	rc := cfg.External.Razorpay
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RazorpayGateway{
		keyID:     rc.KeyID,
		keySecret: rc.KeySecret,
		baseURL:   rc.BaseURL,
		currency:  rc.Currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder registers amount (in paise) with the gateway
func (r *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, receipt string) (*order.GatewayOrder, error) {
	if r.keyID == "" || r.keySecret == "" {
		return nil, ErrGatewayNotConfigured
	}

	body, err := r.call(ctx, http.MethodPost, "/orders", createOrderRequest{
		Amount:   amount,
		Currency: r.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	var created razorpayOrder
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse Razorpay order response: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("razorpay returned an order without id")
	}

	logrus.WithFields(logrus.Fields{
		"gateway_order_id": created.ID,
		"amount":           created.Amount,
		"receipt":          receipt,
	}).Info("payment order created")

	return &order.GatewayOrder{
		ID:       created.ID,
		Amount:   created.Amount,
		Currency: created.Currency,
		KeyID:    r.keyID,
	}, nil
}

// VerifySignature checks the checkout signature, an HMAC-SHA256 of
// "<order id>|<payment id>" keyed with the API secret
func (r *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if r.keySecret == "" || signature == "" {
		return false
	}
	expected := Sign(r.keySecret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the checkout signature for an order and payment
func Sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// call makes an authenticated JSON request to the Razorpay API
func (r *RazorpayGateway) call(ctx context.Context, method, endpoint string, data interface{}) ([]byte, error) {
	var reqBody io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr razorpayError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay %s: %s (status %d)", apiErr.Error.Code, apiErr.Error.Description, resp.StatusCode)
		}
		return nil, fmt.Errorf("razorpay API call failed with status %d", resp.StatusCode)
	}

	return body, nil
}
