// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/order"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /shop/order/create
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	response, err := h.orderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}

	respondSuccess(c, http.StatusCreated, response)
}

// GetOrders handles GET /shop/order/list
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetAllOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// GetOrder handles GET /shop/order/details/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
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

	respondSuccess(c, http.StatusOK, o)
}

// RequestCancellation handles POST /shop/order/cancel/:id
func (h *OrderHandler) RequestCancellation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req order.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	o, err := h.orderService.RequestCancellation(c.Request.Context(), userID, orderID, &req)
	if err != nil {
		respondError(c, err, "Failed to request cancellation")
		return
	}

	respondMessage(c, http.StatusOK, "Cancellation request submitted", o)
}

// RequestReturn handles POST /shop/order/return/:id
func (h *OrderHandler) RequestReturn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req order.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	o, err := h.orderService.RequestReturn(c.Request.Context(), userID, orderID, &req)
	if err != nil {
		respondError(c, err, "Failed to request return")
		return
	}

	respondMessage(c, http.StatusOK, "Return request submitted", o)
}

// AdminGetOrders handles GET /admin/orders/get?status=&pendingRequest=
func (h *OrderHandler) AdminGetOrders(c *gin.Context) {
	var query struct {
		Status         string `form:"status" binding:"omitempty,orderstatus"`
		PendingRequest bool   `form:"pendingRequest"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	orders, err := h.orderService.GetAllOrders(c.Request.Context(), order.ListFilter{
		Status:         order.OrderStatus(query.Status),
		PendingRequest: query.PendingRequest,
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// AdminGetOrder handles GET /admin/orders/details/:id
func (h *OrderHandler) AdminGetOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderDetailsForAdmin(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	respondSuccess(c, http.StatusOK, o)
}

// AdminUpdateOrderStatus handles PUT /admin/orders/update/:id
func (h *OrderHandler) AdminUpdateOrderStatus(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	o, err := h.orderService.UpdateOrderStatus(c.Request.Context(), adminID, orderID, req.OrderStatus)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	respondMessage(c, http.StatusOK, "Order status is updated successfully!", o)
}

// AdminReviewCancellation handles PUT /admin/orders/cancellation/:id
func (h *OrderHandler) AdminReviewCancellation(c *gin.Context) {
	h.reviewRequest(c, h.orderService.ReviewCancellation, "Cancellation request reviewed")
}

// AdminReviewReturn handles PUT /admin/orders/return/:id
func (h *OrderHandler) AdminReviewReturn(c *gin.Context) {
	h.reviewRequest(c, h.orderService.ReviewReturn, "Return request reviewed")
}

type reviewFunc func(ctx context.Context, actorID, orderID uint, req *order.ReviewRequest) (*order.Order, error)

func (h *OrderHandler) reviewRequest(c *gin.Context, review reviewFunc, message string) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req order.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	o, err := review(c.Request.Context(), adminID, orderID, &req)
	if err != nil {
		respondError(c, err, "Failed to review request")
		return
	}

	respondMessage(c, http.StatusOK, message, o)
}

// AdminGetOrderHistory handles GET /admin/orders/history/:id
func (h *OrderHandler) AdminGetOrderHistory(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	events, err := h.orderService.History(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order history")
		return
	}

	respondSuccess(c, http.StatusOK, events)
}
