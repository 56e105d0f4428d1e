// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartItem is one line of a user's cart. A line is unique per product,
// size and color.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"userId"`
	ProductID     uint      `gorm:"not null;uniqueIndex:idx_cart_line;index" json:"productId"`
	SelectedSize  string    `gorm:"size:20;not null;default:'';uniqueIndex:idx_cart_line" json:"selectedSize"`
	SelectedColor string    `gorm:"size:50;not null;default:'';uniqueIndex:idx_cart_line" json:"selectedColor"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Line is a cart item joined with the current product data
type Line struct {
	ProductID      uint   `json:"productId"`
	Title          string `json:"title"`
	Image          string `json:"image"`
	Price          int64  `json:"price"`
	SalePrice      int64  `json:"salePrice"`
	SelectedSize   string `json:"selectedSize"`
	SelectedColor  string `json:"selectedColor"`
	Quantity       int    `json:"quantity"`
	AvailableStock int    `json:"availableStock"`
}

// UnitPrice is the sale price when set, otherwise the list price
func (l Line) UnitPrice() int64 {
	if l.SalePrice > 0 {
		return l.SalePrice
	}
	return l.Price
}

// Summary is the cart as shown to the customer
type Summary struct {
	UserID     uint   `json:"userId"`
	Items      []Line `json:"items"`
	TotalItems int    `json:"totalItems"`
	Subtotal   int64  `json:"subtotal"`
}

func summarize(userID uint, lines []Line) *Summary {
	s := &Summary{UserID: userID, Items: lines}
	if s.Items == nil {
		s.Items = []Line{}
	}
	for _, l := range lines {
		s.TotalItems += l.Quantity
		s.Subtotal += l.UnitPrice() * int64(l.Quantity)
	}
	return s
}
