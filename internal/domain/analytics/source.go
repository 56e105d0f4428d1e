// internal/domain/analytics/source.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/fashion-store/internal/domain/order"
	"github.com/your-org/fashion-store/internal/domain/product"
	"gorm.io/gorm"
)

// GormSource implements Source on the order and product tables
type GormSource struct {
	db *gorm.DB
}

// NewGormSource creates a gorm backed dashboard source
func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) OrderCountsByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := s.db.WithContext(ctx).Model(&order.Order{}).
		Select("order_status AS status, COUNT(*) AS count").
		Group("order_status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	byStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	out := make([]StatusCount, len(order.Statuses))
	for i, st := range order.Statuses {
		out[i] = StatusCount{Status: string(st), Count: byStatus[string(st)]}
	}
	return out, nil
}

func (s *GormSource) PendingRequests(ctx context.Context) (int64, int64, error) {
	var cancellations, returns int64
	db := s.db.WithContext(ctx).Model(&order.Order{})
	if err := db.Where("cancellation_status = ?", order.RequestPending).Count(&cancellations).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count cancellation requests: %w", err)
	}
	db = s.db.WithContext(ctx).Model(&order.Order{})
	if err := db.Where("return_status = ?", order.RequestPending).Count(&returns).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count return requests: %w", err)
	}
	return cancellations, returns, nil
}

func (s *GormSource) PaidRevenue(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	query := s.db.WithContext(ctx).Model(&order.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ?", order.PaymentStatusPaid)
	if !since.IsZero() {
		query = query.Where("order_date >= ?", since)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

func (s *GormSource) ProductCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&product.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *GormSource) LowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error) {
	var out []LowStockProduct
	err := s.db.WithContext(ctx).Model(&product.Product{}).
		Select("id, title, total_stock").
		Where("is_active = ? AND total_stock <= ?", true, threshold).
		Order("total_stock ASC, id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock products: %w", err)
	}
	return out, nil
}

func (s *GormSource) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var out []TopProduct
	err := s.db.WithContext(ctx).Model(&product.Product{}).
		Select("id, title, sales_count").
		Where("sales_count > 0").
		Order("sales_count DESC, id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve top products: %w", err)
	}
	return out, nil
}
