// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/cart"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /shop/cart/get
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.cartService.FetchCartItems(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// AddToCart handles POST /shop/cart/add
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	summary, err := h.cartService.AddToCart(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// UpdateCartItem handles PUT /shop/cart/update-cart
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req cart.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	summary, err := h.cartService.UpdateCartQuantity(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// RemoveFromCart handles DELETE /shop/cart/:productId with the variant
// in the query string
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	req := cart.RemoveRequest{
		ProductID:     productID,
		SelectedSize:  c.Query("selectedSize"),
		SelectedColor: c.Query("selectedColor"),
	}
	summary, err := h.cartService.DeleteCartItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to remove item from cart")
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// ClearCart handles DELETE /shop/cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}

	respondMessage(c, http.StatusOK, "Cart cleared successfully", nil)
}
