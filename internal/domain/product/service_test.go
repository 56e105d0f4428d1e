package product

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/domain/audit"
)

func setup(t *testing.T) (*Service, *memoryRepository, *memoryRecorder) {
	t.Helper()
	repo := newMemoryRepository()
	recorder := &memoryRecorder{}
	return NewService(repo, recorder), repo, recorder
}

func shirtRequest() *ProductRequest {
	return &ProductRequest{
		Title:    "Linen Shirt",
		Category: "men",
		Brand:    "loom",
		Price:    249900,
		Colors:   []string{"white", " sand "},
		Sizes: []SizeInput{
			{Size: "M", Stock: 3},
			{Size: "L", Stock: 2},
		},
	}
}

func TestAddProduct(t *testing.T) {
	svc, repo, recorder := setup(t)

	t.Run("derives total stock from sizes", func(t *testing.T) {
		req := shirtRequest()
		req.TotalStock = 999

		p, err := svc.AddProduct(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, 5, p.TotalStock)
		assert.True(t, p.IsActive)
		assert.Equal(t, []string{"white", "sand"}, []string(p.Colors))
		assert.Equal(t, 1, p.Sizes[1].SortOrder)

		_, err = repo.FindByID(context.Background(), p.ID)
		assert.NoError(t, err)
		require.Len(t, recorder.events, 1)
		assert.Equal(t, audit.ActionProductCreated, recorder.events[0].Action)
	})

	t.Run("sizeless product keeps total stock", func(t *testing.T) {
		req := shirtRequest()
		req.Sizes = nil
		req.TotalStock = 4

		p, err := svc.AddProduct(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, 4, p.TotalStock)
	})

	t.Run("rejects sale price above price", func(t *testing.T) {
		req := shirtRequest()
		req.SalePrice = req.Price

		_, err := svc.AddProduct(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})

	t.Run("rejects duplicate sizes", func(t *testing.T) {
		req := shirtRequest()
		req.Sizes = append(req.Sizes, SizeInput{Size: "M", Stock: 1})

		_, err := svc.AddProduct(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})
}

func TestEditProduct(t *testing.T) {
	svc, _, recorder := setup(t)
	p, err := svc.AddProduct(context.Background(), 1, shirtRequest())
	require.NoError(t, err)

	inactive := false
	req := shirtRequest()
	req.Sizes = []SizeInput{{Size: "S", Stock: 7}}
	req.IsActive = &inactive

	updated, err := svc.EditProduct(context.Background(), 1, p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.TotalStock)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "stock=5", recorder.events[1].From)
	assert.Equal(t, "stock=7", recorder.events[1].To)

	_, err = svc.GetProductDetails(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.EditProduct(context.Background(), 1, 404, req)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc, _, _ := setup(t)
	p, err := svc.AddProduct(context.Background(), 1, shirtRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), 1, p.ID))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), 1, p.ID), ErrProductNotFound)
}

func TestGetFilteredProducts(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	for _, in := range []struct {
		title, category, brand string
		price                  int64
	}{
		{"Kurta", "women", "loom", 3000},
		{"Chinos", "men", "weft", 2000},
		{"Blazer", "men", "loom", 9000},
	} {
		req := shirtRequest()
		req.Title, req.Category, req.Brand, req.Price = in.title, in.category, in.brand, in.price
		_, err := svc.AddProduct(ctx, 1, req)
		require.NoError(t, err)
	}

	products, err := svc.GetFilteredProducts(ctx, &ListRequest{Category: "men", SortBy: SortPriceHighToLow})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Blazer", products[0].Title)

	products, err = svc.GetFilteredProducts(ctx, &ListRequest{Category: "men, women", Brand: "loom"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Kurta", products[0].Title)

	_, err = svc.SearchProducts(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyKeyword)

	found, err := svc.SearchProducts(ctx, "chin")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestProductValidateLine(t *testing.T) {
	p := &Product{
		IsActive: true,
		Colors:   []string{"red"},
		Sizes:    []Size{{Size: "M", Stock: 2}},
	}

	assert.NoError(t, p.ValidateLine("M", "red", 2))
	assert.ErrorIs(t, p.ValidateLine("M", "red", 3), ErrInsufficientStock)
	assert.ErrorIs(t, p.ValidateLine("XL", "red", 1), ErrInvalidSize)
	assert.ErrorIs(t, p.ValidateLine("M", "blue", 1), ErrInvalidColor)

	p.IsActive = false
	assert.ErrorIs(t, p.ValidateLine("M", "red", 1), ErrProductUnavailable)

	sizeless := &Product{IsActive: true, TotalStock: 1}
	assert.NoError(t, sizeless.ValidateLine("", "", 1))
	assert.ErrorIs(t, sizeless.ValidateLine("", "", 2), ErrInsufficientStock)
}

type memoryRepository struct {
	nextID   uint
	products map[uint]*Product
	reviews  []Review
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{products: make(map[uint]*Product)}
}

func (m *memoryRepository) List(_ context.Context, filter Filter) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if !filter.IncludeInactive && !p.IsActive {
			continue
		}
		if len(filter.Categories) > 0 && !contains(filter.Categories, p.Category) {
			continue
		}
		if len(filter.Brands) > 0 && !contains(filter.Brands, p.Brand) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortBy == SortPriceHighToLow {
			return out[i].Price > out[j].Price
		}
		return out[i].Price < out[j].Price
	})
	return out, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id uint) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]Product, error) {
	var out []Product
	for _, id := range ids {
		if p, err := m.FindByID(ctx, id); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memoryRepository) Search(_ context.Context, keyword string) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.IsActive && strings.Contains(strings.ToLower(p.Title), strings.ToLower(keyword)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memoryRepository) Create(_ context.Context, p *Product) error {
	m.nextID++
	p.ID = m.nextID
	clone := *p
	m.products[p.ID] = &clone
	return nil
}

func (m *memoryRepository) Update(_ context.Context, p *Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	clone := *p
	m.products[p.ID] = &clone
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memoryRepository) Exists(_ context.Context, productID, userID uint) (bool, error) {
	for _, r := range m.reviews {
		if r.ProductID == productID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) ListByProduct(_ context.Context, productID uint) ([]Review, error) {
	var out []Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) SetAverage(_ context.Context, productID uint, average float64) error {
	if p, ok := m.products[productID]; ok {
		p.AverageReview = average
	}
	return nil
}

// memoryReviews adapts memoryRepository to ReviewRepository, whose Create
// signature differs from the product one
type memoryReviews struct{ *memoryRepository }

func (m memoryReviews) Create(_ context.Context, r *Review) error {
	r.ID = uint(len(m.reviews) + 1)
	m.reviews = append(m.reviews, *r)
	return nil
}

type memoryRecorder struct {
	events []audit.Event
}

func (m *memoryRecorder) Record(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memoryRecorder) History(context.Context, string, uint) ([]audit.Event, error) {
	return m.events, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
