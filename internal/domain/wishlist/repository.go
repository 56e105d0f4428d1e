// internal/domain/wishlist/repository.go
package wishlist

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the wishlist persistence contract
type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]WishlistItem, error)
	Exists(ctx context.Context, userID, productID uint) (bool, error)
	Create(ctx context.Context, item *WishlistItem) error
	Delete(ctx context.Context, userID, productID uint) error
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed wishlist repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListByUser(ctx context.Context, userID uint) ([]WishlistItem, error) {
	var items []WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}
	return items, nil
}

func (r *GormRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) Create(ctx context.Context, item *WishlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInWishlist
		}
		return fmt.Errorf("failed to add item to wishlist: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, userID, productID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove item from wishlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotInWishlist
	}
	return nil
}
