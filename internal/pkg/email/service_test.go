package email

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

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Fashion Store", BaseURL: "https://shop.example.com", CompanyEmail: "help@example.com"},
		External: config.ExternalConfig{Email: config.EmailConfig{
			Enabled:   true,
			Provider:  "resend",
			APIKey:    "re_test",
			FromEmail: "orders@example.com",
			FromName:  "Fashion Store",
		}},
	}
}

func TestSendOrderConfirmationEmail(t *testing.T) {
	var got resendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, err := NewEmailService(testConfig())
	require.NoError(t, err)
	svc.endpoints["resend"] = server.URL

	err = svc.SendOrderConfirmationEmail(context.Background(), OrderConfirmationData{
		BaseData:    BaseData{UserName: "Ana", UserEmail: "ana@example.com"},
		OrderNumber: "ORD-20260101-00007",
		Total:       FormatAmount(259900),
		Items:       []OrderLine{{Title: "Linen Shirt", Size: "M", Quantity: 1, Total: FormatAmount(259900)}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ana@example.com"}, got.To)
	assert.Equal(t, "Fashion Store <orders@example.com>", got.From)
	assert.Contains(t, got.Subject, "ORD-20260101-00007")
	assert.Contains(t, got.HTML, "Linen Shirt")
	assert.Contains(t, got.HTML, "₹2599.00")
	assert.Contains(t, got.HTML, "https://shop.example.com/shop/account")
}

func TestSendEmailProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer server.Close()

	svc, err := NewEmailService(testConfig())
	require.NoError(t, err)
	svc.endpoints["resend"] = server.URL

	err = svc.SendOrderStatusUpdateEmail(context.Background(), OrderStatusUpdateData{
		BaseData:    BaseData{UserEmail: "ana@example.com"},
		OrderNumber: "ORD-1",
		Status:      "shipped",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDisabledEmailIsSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.External.Email.Enabled = false
	cfg.External.Email.Provider = "carrier-pigeon"

	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	assert.NoError(t, svc.SendWelcomeEmail(context.Background(), "ana@example.com", "Ana"))
}

func TestRenderRequestReviewed(t *testing.T) {
	svc, err := NewEmailService(testConfig())
	require.NoError(t, err)

	html, err := svc.renderTemplate(KindRequestReviewed, RequestReviewedData{
		OrderNumber: "ORD-9",
		RequestKind: "return",
		Decision:    "rejected",
		AdminNotes:  "Worn item",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Worn item")
	assert.NotContains(t, html, "Refund amount")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹0.05", FormatAmount(5))
	assert.Equal(t, "₹1234.50", FormatAmount(123450))
	assert.Equal(t, "-₹1.00", FormatAmount(-100))
}
