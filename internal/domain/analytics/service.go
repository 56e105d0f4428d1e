// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

const dashboardCacheKey = "analytics:dashboard"

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// LowStockProduct is an active product at or under the stock threshold
type LowStockProduct struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	TotalStock int    `json:"totalStock"`
}

// TopProduct is a best seller by units sold
type TopProduct struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	SalesCount int    `json:"salesCount"`
}

// Dashboard is the admin overview
type Dashboard struct {
	TotalOrders          int64             `json:"totalOrders"`
	OrdersByStatus       []StatusCount     `json:"ordersByStatus"`
	PendingCancellations int64             `json:"pendingCancellations"`
	PendingReturns       int64             `json:"pendingReturns"`
	Revenue              int64             `json:"revenue"`
	RevenueThisMonth     int64             `json:"revenueThisMonth"`
	TotalProducts        int64             `json:"totalProducts"`
	LowStockProducts     []LowStockProduct `json:"lowStockProducts"`
	TopProducts          []TopProduct      `json:"topProducts"`
	GeneratedAt          time.Time         `json:"generatedAt"`
}

// Source runs the aggregate queries behind the dashboard
type Source interface {
	OrderCountsByStatus(ctx context.Context) ([]StatusCount, error)
	PendingRequests(ctx context.Context) (cancellations, returns int64, err error)
	PaidRevenue(ctx context.Context, since time.Time) (int64, error)
	ProductCount(ctx context.Context) (int64, error)
	LowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

// Cache holds a rendered dashboard for a short time
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service builds the admin dashboard
type Service struct {
	source    Source
	cache     Cache
	cacheTTL  time.Duration
	threshold int
	now       func() time.Time
}

// NewService creates a new analytics service. cache may be nil.
func NewService(source Source, cache Cache, cacheTTL time.Duration, lowStockThreshold int) *Service {
	return &Service{
		source:    source,
		cache:     cache,
		cacheTTL:  cacheTTL,
		threshold: lowStockThreshold,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetDashboard returns the cached dashboard or computes a fresh one
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if s.cache != nil && s.cacheTTL > 0 {
		if raw, ok, err := s.cache.Get(ctx, dashboardCacheKey); err != nil {
			logrus.WithError(err).Warn("failed to read dashboard cache")
		} else if ok {
			var d Dashboard
			if err := json.Unmarshal(raw, &d); err == nil {
				return &d, nil
			}
		}
	}

	d, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := json.Marshal(d); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL); err != nil {
				logrus.WithError(err).Warn("failed to write dashboard cache")
			}
		}
	}
	return d, nil
}

func (s *Service) compute(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	d := &Dashboard{GeneratedAt: now}

	counts, err := s.source.OrderCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	d.OrdersByStatus = counts
	for _, c := range counts {
		d.TotalOrders += c.Count
	}

	if d.PendingCancellations, d.PendingReturns, err = s.source.PendingRequests(ctx); err != nil {
		return nil, err
	}
	if d.Revenue, err = s.source.PaidRevenue(ctx, time.Time{}); err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if d.RevenueThisMonth, err = s.source.PaidRevenue(ctx, monthStart); err != nil {
		return nil, err
	}
	if d.TotalProducts, err = s.source.ProductCount(ctx); err != nil {
		return nil, err
	}
	if d.LowStockProducts, err = s.source.LowStockProducts(ctx, s.threshold); err != nil {
		return nil, err
	}
	if d.TopProducts, err = s.source.TopProducts(ctx, 5); err != nil {
		return nil, err
	}
	return d, nil
}
