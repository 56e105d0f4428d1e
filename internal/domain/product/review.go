// internal/domain/product/review.go
package product

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrNotPurchased    = errors.New("you need to purchase this product to review it")
)

// PurchaseChecker reports whether a user has a completed purchase of a product
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, userID, productID uint) (bool, error)
}

// ReviewService handles review business logic
type ReviewService struct {
	reviews   ReviewRepository
	products  Repository
	purchases PurchaseChecker
}

// NewReviewService creates a new review service
func NewReviewService(reviews ReviewRepository, products Repository, purchases PurchaseChecker) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		products:  products,
		purchases: purchases,
	}
}

// AddReviewRequest represents review creation data
type AddReviewRequest struct {
	ProductID     uint   `json:"productId" binding:"required"`
	ReviewMessage string `json:"reviewMessage" binding:"required,max=2000"`
	ReviewValue   int    `json:"reviewValue" binding:"required,min=1,max=5"`
}

// AddReview stores a review from a buyer and refreshes the product average
func (s *ReviewService) AddReview(ctx context.Context, userID uint, userName string, req *AddReviewRequest) (*Review, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	bought, err := s.purchases.HasPurchased(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !bought {
		return nil, ErrNotPurchased
	}

	exists, err := s.reviews.Exists(ctx, req.ProductID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &Review{
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  userName,
		Message:   strings.TrimSpace(req.ReviewMessage),
		Value:     req.ReviewValue,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshAverage(ctx, req.ProductID); err != nil {
		logrus.WithError(err).WithField("product_id", req.ProductID).Warn("failed to refresh review average")
	}

	return review, nil
}

// ListReviews returns a product's reviews, newest first
func (s *ReviewService) ListReviews(ctx context.Context, productID uint) ([]Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *ReviewService) refreshAverage(ctx context.Context, productID uint) error {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	return s.reviews.SetAverage(ctx, productID, averageRating(reviews))
}

// averageRating rounds to one decimal place
func averageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Value
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
