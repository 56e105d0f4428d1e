// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/product"
)

// ProductReader is the catalog view the wishlist needs
type ProductReader interface {
	GetProduct(ctx context.Context, id uint) (*product.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]*product.Product, error)
}

// CartAdder adds a line to a user's cart with the usual stock checks
type CartAdder interface {
	AddToCart(ctx context.Context, userID uint, req *cart.AddToCartRequest) (*cart.Summary, error)
}

// Service handles wishlist business logic
type Service struct {
	repo     Repository
	products ProductReader
	carts    CartAdder
	now      func() time.Time
}

// NewService creates a new wishlist service
func NewService(repo Repository, products ProductReader, carts CartAdder) *Service {
	return &Service{
		repo:     repo,
		products: products,
		carts:    carts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddToWishlistRequest represents add to wishlist request
type AddToWishlistRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// MoveToCartRequest picks the size, color and quantity for the cart line
type MoveToCartRequest struct {
	ProductID     uint   `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// GetWishlist lists a user's wishlist. Products that were deactivated or
// deleted stay listed and are flagged unavailable.
func (s *Service) GetWishlist(ctx context.Context, userID uint) ([]Entry, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(items))
	for i, item := range items {
		p := products[item.ProductID]
		entries[i] = Entry{
			ProductID:   item.ProductID,
			AddedAt:     item.AddedAt,
			Product:     p,
			IsAvailable: p != nil && p.IsActive,
		}
	}
	return entries, nil
}

// AddToWishlist saves an active product for the user
func (s *Service) AddToWishlist(ctx context.Context, userID uint, req *AddToWishlistRequest) (*WishlistItem, error) {
	p, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, product.ErrProductUnavailable
	}

	exists, err := s.repo.Exists(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInWishlist
	}

	item := &WishlistItem{UserID: userID, ProductID: req.ProductID, AddedAt: s.now()}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFromWishlist removes a product from the user's wishlist
func (s *Service) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return s.repo.Delete(ctx, userID, productID)
}

// MoveToCart adds the product to the cart and only then drops it from the
// wishlist, so a rejected cart add leaves both untouched
func (s *Service) MoveToCart(ctx context.Context, userID uint, req *MoveToCartRequest) (*cart.Summary, error) {
	exists, err := s.repo.Exists(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotInWishlist
	}

	summary, err := s.carts.AddToCart(ctx, userID, &cart.AddToCartRequest{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		SelectedSize:  req.SelectedSize,
		SelectedColor: req.SelectedColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	if err := s.repo.Delete(ctx, userID, req.ProductID); err != nil {
		return nil, err
	}
	return summary, nil
}
