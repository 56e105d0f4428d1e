// internal/domain/cart/repository.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the cart persistence contract
type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]CartItem, error)
	FindLine(ctx context.Context, userID, productID uint, size, color string) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	DeleteLine(ctx context.Context, userID, productID uint, size, color string) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	Clear(ctx context.Context, userID uint) error
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed cart repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListByUser(ctx context.Context, userID uint) ([]CartItem, error) {
	var items []CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return items, nil
}

func (r *GormRepository) FindLine(ctx context.Context, userID, productID uint, size, color string) (*CartItem, error) {
	var item CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND selected_size = ? AND selected_color = ?", userID, productID, size, color).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to retrieve cart item: %w", err)
	}
	return &item, nil
}

func (r *GormRepository) Save(ctx context.Context, item *CartItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteLine(ctx context.Context, userID, productID uint, size, color string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND selected_size = ? AND selected_color = ?", userID, productID, size, color).
		Delete(&CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *GormRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to prune cart items: %w", err)
	}
	return nil
}

func (r *GormRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx deletes a user's cart inside an existing transaction
func ClearTx(tx *gorm.DB, userID uint) error {
	if err := tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
