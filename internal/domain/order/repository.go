// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/product"
	"gorm.io/gorm"
)

// ListFilter narrows the admin order list
type ListFilter struct {
	Status         OrderStatus
	PendingRequest bool
}

// Repository is the order persistence contract
type Repository interface {
	Create(ctx context.Context, o *Order) error
	// Confirm decrements stock for every item, persists o and clears the
	// owner's cart as one unit. An existing order must still be pending.
	Confirm(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	HasPurchased(ctx context.Context, userID, productID uint) (bool, error)
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed order repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createWithNumber(tx, o)
	})
}

func (r *GormRepository) Confirm(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.ID != 0 {
			result := tx.Model(&Order{}).
				Where("id = ? AND order_status = ? AND payment_status = ?", o.ID, OrderStatusPending, PaymentStatusPending).
				Updates(map[string]interface{}{
					"order_status":      o.Status,
					"payment_status":    o.PaymentStatus,
					"payment_id":        o.PaymentID,
					"payer_id":          o.PayerID,
					"order_update_date": o.OrderUpdateDate,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to confirm order: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrOrderNotPending
			}
		}

		for _, item := range o.Items {
			if err := product.DecrementStock(tx, item.ProductID, item.SelectedSize, item.Quantity); err != nil {
				return err
			}
		}

		if o.ID == 0 {
			if err := createWithNumber(tx, o); err != nil {
				return err
			}
		}

		return cart.ClearTx(tx, o.UserID)
	})
}

func createWithNumber(tx *gorm.DB, o *Order) error {
	if err := tx.Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	o.OrderNumber = o.GenerateOrderNumber()
	if err := tx.Model(o).Update("order_number", o.OrderNumber).Error; err != nil {
		return fmt.Errorf("failed to update order number: %w", err)
	}
	return nil
}

func (r *GormRepository) Save(ctx context.Context, o *Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(o).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

func (r *GormRepository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

func (r *GormRepository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	var orders []Order
	query := r.db.WithContext(ctx).Preload("Items")
	if filter.Status != "" {
		query = query.Where("order_status = ?", filter.Status)
	}
	if filter.PendingRequest {
		query = query.Where("cancellation_status = ? OR return_status = ?", RequestPending, RequestPending)
	}
	if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// HasPurchased reports whether the user has a confirmed or later order that
// contains the product
func (r *GormRepository) HasPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Where("orders.order_status IN ?", purchasedStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return count > 0, nil
}

var purchasedStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}
