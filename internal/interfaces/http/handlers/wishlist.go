// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/wishlist"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GetWishlist handles GET /shop/wishlist/get
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.wishlistService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve wishlist")
		return
	}

	respondSuccess(c, http.StatusOK, entries)
}

// AddToWishlist handles POST /shop/wishlist/add
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req wishlist.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	item, err := h.wishlistService.AddToWishlist(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to add to wishlist")
		return
	}

	respondMessage(c, http.StatusCreated, "Added to wishlist", item)
}

// RemoveFromWishlist handles DELETE /shop/wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveFromWishlist(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err, "Failed to remove from wishlist")
		return
	}

	respondMessage(c, http.StatusOK, "Removed from wishlist", nil)
}

// MoveToCart handles POST /shop/wishlist/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req wishlist.MoveToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	summary, err := h.wishlistService.MoveToCart(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to move item to cart")
		return
	}

	respondMessage(c, http.StatusOK, "Moved to cart", summary)
}
