// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/product"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviewService *product.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *product.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview handles POST /shop/review/add
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req product.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userName := c.GetString(middleware.ContextUserName)
	review, err := h.reviewService.AddReview(c.Request.Context(), userID, userName, &req)
	if err != nil {
		respondError(c, err, "Failed to add review")
		return
	}

	respondSuccess(c, http.StatusCreated, review)
}

// GetProductReviews handles GET /shop/review/:productId
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "Failed to retrieve reviews")
		return
	}

	respondSuccess(c, http.StatusOK, reviews)
}
