// internal/domain/wishlist/entity.go
package wishlist

import (
	"errors"
	"time"

	"github.com/your-org/fashion-store/internal/domain/product"
)

var (
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not found in wishlist")
)

// WishlistItem is one product saved by a user
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product;index" json:"productId"`
	AddedAt   time.Time `gorm:"not null" json:"addedAt"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// Entry is a wishlist item with the product's current state. Product is nil
// when the product no longer exists.
type Entry struct {
	ProductID   uint             `json:"productId"`
	AddedAt     time.Time        `json:"addedAt"`
	Product     *product.Product `json:"product,omitempty"`
	IsAvailable bool             `json:"isAvailable"`
}
