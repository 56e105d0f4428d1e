// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/order"
)

// PaymentHandler handles the online payment return leg
type PaymentHandler struct {
	orderService *order.Service
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(orderService *order.Service) *PaymentHandler {
	return &PaymentHandler{orderService: orderService}
}

// CapturePayment handles POST /shop/order/capture. The client posts the
// gateway's checkout result; the signature is verified before the order is
// confirmed and stock is taken.
func (h *PaymentHandler) CapturePayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req order.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	o, err := h.orderService.CapturePayment(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to capture payment")
		return
	}

	respondMessage(c, http.StatusOK, "Order confirmed", o)
}
