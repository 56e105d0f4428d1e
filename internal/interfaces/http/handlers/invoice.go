// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/order"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/pkg/pdf"
)

// InvoiceHandler renders order documents
type InvoiceHandler struct {
	orderService *order.Service
	userService  *user.Service
	pdfService   *pdf.Service
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderService *order.Service, userService *user.Service, pdfService *pdf.Service) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: orderService,
		userService:  userService,
		pdfService:   pdfService,
	}
}

// GenerateInvoice handles GET /shop/order/invoice/:id
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderDetails(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	data, err := h.pdfService.GenerateInvoice(o, h.customerName(c, o))
	if err != nil {
		respondError(c, err, "Failed to generate invoice")
		return
	}

	sendPDF(c, fmt.Sprintf("invoice-%s.pdf", o.OrderNumber), data)
}

// GetInvoicePreview handles GET /shop/order/invoice/:id/preview
func (h *InvoiceHandler) GetInvoicePreview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderDetails(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	html, err := h.pdfService.RenderInvoiceHTML(o, h.customerName(c, o))
	if err != nil {
		respondError(c, err, "Failed to render invoice")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// AdminGenerateInvoice handles GET /admin/orders/invoice/:id
func (h *InvoiceHandler) AdminGenerateInvoice(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderDetailsForAdmin(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	data, err := h.pdfService.GenerateInvoice(o, h.customerName(c, o))
	if err != nil {
		respondError(c, err, "Failed to generate invoice")
		return
	}

	sendPDF(c, fmt.Sprintf("invoice-%s.pdf", o.OrderNumber), data)
}

// AdminShippingLabel handles GET /admin/orders/label/:id
func (h *InvoiceHandler) AdminShippingLabel(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderDetailsForAdmin(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	data, err := h.pdfService.GenerateShippingLabel(o, h.customerName(c, o))
	if err != nil {
		respondError(c, err, "Failed to generate shipping label")
		return
	}

	sendPDF(c, fmt.Sprintf("label-%s.pdf", o.OrderNumber), data)
}

// customerName falls back to an empty name when the account is gone
func (h *InvoiceHandler) customerName(c *gin.Context, o *order.Order) string {
	_, name, err := h.userService.Contact(c.Request.Context(), o.UserID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id": o.ID,
			"user_id":  o.UserID,
		}).Warn("failed to look up customer for order document")
		return ""
	}
	return name
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/pdf", data)
}
