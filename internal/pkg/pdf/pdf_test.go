package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/domain/order"
)

func testOrder() *order.Order {
	return &order.Order{
		ID:            42,
		OrderNumber:   "ORD-20260315-00042",
		PaymentMethod: order.PaymentMethodCOD,
		PaymentStatus: order.PaymentStatusPending,
		Status:        order.OrderStatusShipped,
		TotalAmount:   349800,
		OrderDate:     time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		AddressInfo: order.AddressInfo{
			Address: "12 MG Road", City: "Pune", Pincode: "411001", Phone: "9876543210",
		},
		Items: []order.OrderItem{
			{Title: "Linen Relaxed Shirt", Price: 199900, SelectedSize: "M", SelectedColor: "white", Quantity: 1},
			{Title: "Leather Belt", Price: 149900, Quantity: 1},
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(&config.Config{App: config.AppConfig{
		CompanyName: "Fashion Store", CompanyAddress: "1 Fashion St, Mumbai", CompanyEmail: "support@example.com",
	}})
	require.NoError(t, err)
	return svc
}

func TestRenderInvoiceHTML(t *testing.T) {
	svc := newTestService(t)

	html, err := svc.RenderInvoiceHTML(testOrder(), "Asha")
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "INV-ORD-20260315-00042")
	assert.Contains(t, body, "Cash on Delivery")
	assert.Contains(t, body, "₹1999.00")
	assert.Contains(t, body, "₹3498.00")
	assert.Contains(t, body, "411001")
	assert.NotContains(t, body, "Refunded:")
}

func TestGenerateShippingLabel(t *testing.T) {
	svc := newTestService(t)

	data, err := svc.GenerateShippingLabel(testOrder(), "Asha")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, "ORD-20260315-00042|42|411001", LabelPayload(testOrder()))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹0.05", formatAmount(5))
	assert.Equal(t, "-₹12.50", formatAmount(-1250))
}
