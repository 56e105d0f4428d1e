// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/product"
)

// ProductReader is the catalog view the cart needs
type ProductReader interface {
	GetProduct(ctx context.Context, id uint) (*product.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]*product.Product, error)
}

// Service handles cart business logic
type Service struct {
	repo     Repository
	products ProductReader
}

// NewService creates a new cart service
func NewService(repo Repository, products ProductReader) *Service {
	return &Service{
		repo:     repo,
		products: products,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID     uint   `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// UpdateCartRequest sets the absolute quantity of a line
type UpdateCartRequest struct {
	ProductID     uint   `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// RemoveRequest identifies a line to delete
type RemoveRequest struct {
	ProductID     uint   `json:"productId" form:"productId" binding:"required"`
	SelectedSize  string `json:"selectedSize" form:"selectedSize"`
	SelectedColor string `json:"selectedColor" form:"selectedColor"`
}

// AddToCart adds quantity of a product variant, merging with an existing line.
// Stock is checked against the live reading but not reserved.
func (s *Service) AddToCart(ctx context.Context, userID uint, req *AddToCartRequest) (*Summary, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindLine(ctx, userID, req.ProductID, req.SelectedSize, req.SelectedColor)
	switch {
	case errors.Is(err, ErrItemNotFound):
		item = &CartItem{
			UserID:        userID,
			ProductID:     req.ProductID,
			SelectedSize:  req.SelectedSize,
			SelectedColor: req.SelectedColor,
		}
	case err != nil:
		return nil, err
	}

	wanted := item.Quantity + req.Quantity
	if err := p.ValidateLine(req.SelectedSize, req.SelectedColor, wanted); err != nil {
		return nil, fmt.Errorf("cannot add %d of %q: %w", wanted, p.Title, err)
	}

	item.Quantity = wanted
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	return s.FetchCartItems(ctx, userID)
}

// UpdateCartQuantity sets a line's quantity after checking live stock
func (s *Service) UpdateCartQuantity(ctx context.Context, userID uint, req *UpdateCartRequest) (*Summary, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.FindLine(ctx, userID, req.ProductID, req.SelectedSize, req.SelectedColor)
	if err != nil {
		return nil, err
	}

	p, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := p.ValidateLine(req.SelectedSize, req.SelectedColor, req.Quantity); err != nil {
		return nil, fmt.Errorf("cannot set %q to %d: %w", p.Title, req.Quantity, err)
	}

	item.Quantity = req.Quantity
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	return s.FetchCartItems(ctx, userID)
}

// DeleteCartItem removes one line
func (s *Service) DeleteCartItem(ctx context.Context, userID uint, req *RemoveRequest) (*Summary, error) {
	if err := s.repo.DeleteLine(ctx, userID, req.ProductID, req.SelectedSize, req.SelectedColor); err != nil {
		return nil, err
	}
	return s.FetchCartItems(ctx, userID)
}

// FetchCartItems returns the cart with current product data. Lines whose
// product was deleted or deactivated are dropped from the stored cart.
func (s *Service) FetchCartItems(ctx context.Context, userID uint) (*Summary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return summarize(userID, nil), nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	var stale []uint
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok || !p.IsActive {
			stale = append(stale, item.ID)
			continue
		}
		stock, _ := p.StockFor(item.SelectedSize)
		lines = append(lines, Line{
			ProductID:      p.ID,
			Title:          p.Title,
			Image:          p.Image,
			Price:          p.Price,
			SalePrice:      p.SalePrice,
			SelectedSize:   item.SelectedSize,
			SelectedColor:  item.SelectedColor,
			Quantity:       item.Quantity,
			AvailableStock: stock,
		})
	}

	if len(stale) > 0 {
		if err := s.repo.DeleteByIDs(ctx, stale); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("failed to prune unavailable cart items")
		}
	}

	return summarize(userID, lines), nil
}

// ClearCart empties a user's cart
func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.Clear(ctx, userID)
}
