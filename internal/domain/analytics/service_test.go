package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls     int
	threshold int
	since     []time.Time
}

func (s *stubSource) OrderCountsByStatus(context.Context) ([]StatusCount, error) {
	s.calls++
	return []StatusCount{{Status: "pending", Count: 2}, {Status: "delivered", Count: 3}}, nil
}

func (s *stubSource) PendingRequests(context.Context) (int64, int64, error) {
	return 1, 4, nil
}

func (s *stubSource) PaidRevenue(_ context.Context, since time.Time) (int64, error) {
	s.since = append(s.since, since)
	if since.IsZero() {
		return 50000, nil
	}
	return 12000, nil
}

func (s *stubSource) ProductCount(context.Context) (int64, error) { return 9, nil }

func (s *stubSource) LowStockProducts(_ context.Context, threshold int) ([]LowStockProduct, error) {
	s.threshold = threshold
	return []LowStockProduct{{ID: 3, Title: "Scarf", TotalStock: 1}}, nil
}

func (s *stubSource) TopProducts(context.Context, int) ([]TopProduct, error) {
	return []TopProduct{{ID: 1, Title: "Linen Shirt", SalesCount: 12}}, nil
}

type memoryCache struct {
	values map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{}
	svc := NewService(source, &memoryCache{values: map[string][]byte{}}, time.Minute, 5)
	svc.now = func() time.Time { return time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC) }

	d, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), d.TotalOrders)
	assert.Equal(t, int64(1), d.PendingCancellations)
	assert.Equal(t, int64(4), d.PendingReturns)
	assert.Equal(t, int64(50000), d.Revenue)
	assert.Equal(t, int64(12000), d.RevenueThisMonth)
	assert.Equal(t, 5, source.threshold)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), source.since[1])

	again, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, d.Revenue, again.Revenue)
	assert.Len(t, again.LowStockProducts, 1)
}

func TestGetDashboardWithoutCache(t *testing.T) {
	source := &stubSource{}
	svc := NewService(source, nil, time.Minute, 5)

	_, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}
