package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/config"
)

func newGateway(baseURL string) *RazorpayGateway {
	cfg := &config.Config{}
	cfg.External.Razorpay = config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "shh",
		BaseURL:   baseURL,
		Currency:  "INR",
	}
	return NewRazorpayGateway(cfg)
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "shh", pass)
		assert.Equal(t, "/orders", r.URL.Path)

		var req createOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(380000), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		_ = json.NewEncoder(w).Encode(razorpayOrder{ID: "order_abc", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"})
	}))
	defer server.Close()

	gw, err := newGateway(server.URL).CreateOrder(context.Background(), 380000, "rcpt_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", gw.ID)
	assert.Equal(t, "rzp_test_key", gw.KeyID)
	assert.Equal(t, int64(380000), gw.Amount)
}

func TestCreateOrderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer server.Close()

	_, err := newGateway(server.URL).CreateOrder(context.Background(), 1, "rcpt_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestCreateOrderWithoutKeys(t *testing.T) {
	_, err := NewRazorpayGateway(&config.Config{}).CreateOrder(context.Background(), 100, "r")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
}

func TestVerifySignature(t *testing.T) {
	gw := newGateway("")
	sig := Sign("shh", "order_abc", "pay_1")

	assert.True(t, gw.VerifySignature("order_abc", "pay_1", sig))
	assert.False(t, gw.VerifySignature("order_abc", "pay_2", sig))
	assert.False(t, gw.VerifySignature("order_abc", "pay_1", Sign("other", "order_abc", "pay_1")))
	assert.False(t, gw.VerifySignature("order_abc", "pay_1", ""))
}
