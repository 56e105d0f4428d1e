package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/pkg/testdb"
	"gorm.io/gorm"
)

func openCatalog(t *testing.T) (*GormRepository, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t, &Product{}, &Size{}, &Review{})
	return NewGormRepository(db), db
}

func reload(t *testing.T, repo *GormRepository, id uint) *Product {
	t.Helper()
	p, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func TestGormRepositoryStoresInactiveProduct(t *testing.T) {
	ctx := context.Background()
	repo, _ := openCatalog(t)
	svc := NewService(repo, nil)

	hidden := false
	req := shirtRequest()
	req.IsActive = &hidden
	created, err := svc.AddProduct(ctx, 1, req)
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	stored := reload(t, repo, created.ID)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 5, stored.TotalStock)
	assert.Equal(t, []string{"white", "sand"}, []string(stored.Colors))

	listed, err := svc.GetFilteredProducts(ctx, &ListRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.GetProductDetails(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	all, err := svc.FetchAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	t.Run("reactivated by edit", func(t *testing.T) {
		visible := true
		req.IsActive = &visible
		_, err := svc.EditProduct(ctx, 1, created.ID, req)
		require.NoError(t, err)
		assert.True(t, reload(t, repo, created.ID).IsActive)
	})
}

func TestGormRepositoryListAndSearch(t *testing.T) {
	ctx := context.Background()
	repo, _ := openCatalog(t)

	for _, p := range []*Product{
		{Title: "Linen Shirt", Category: "men", Brand: "loom", Price: 2000, IsActive: true},
		{Title: "Silk Scarf", Category: "women", Brand: "weft", Price: 800, IsActive: true},
		{Title: "Linen Trousers", Category: "men", Brand: "loom", Price: 3000, IsActive: false},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	men, err := repo.List(ctx, Filter{Categories: []string{"men"}, SortBy: SortPriceHighToLow})
	require.NoError(t, err)
	require.Len(t, men, 1)
	assert.Equal(t, "Linen Shirt", men[0].Title)

	everything, err := repo.List(ctx, Filter{IncludeInactive: true, SortBy: SortTitleZToA})
	require.NoError(t, err)
	require.Len(t, everything, 3)
	assert.Equal(t, "Silk Scarf", everything[0].Title)

	found, err := repo.Search(ctx, "LINEN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Linen Shirt", found[0].Title)
}

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()
	repo, db := openCatalog(t)

	sized := &Product{Title: "Linen Shirt", Category: "men", Price: 2000, IsActive: true,
		Sizes: []Size{{Size: "M", Stock: 2}, {Size: "L", Stock: 5}}}
	sized.RecomputeTotalStock()
	require.NoError(t, repo.Create(ctx, sized))

	plain := &Product{Title: "Scarf", Category: "women", Price: 800, IsActive: true, TotalStock: 3}
	require.NoError(t, repo.Create(ctx, plain))

	t.Run("size stock recomputes total and bumps sales", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			return DecrementStock(tx, sized.ID, "M", 2)
		})
		require.NoError(t, err)

		p := reload(t, repo, sized.ID)
		stock, _ := p.StockFor("M")
		assert.Equal(t, 0, stock)
		assert.Equal(t, 5, p.TotalStock)
		assert.Equal(t, 2, p.SalesCount)
	})

	t.Run("short size changes nothing", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			return DecrementStock(tx, sized.ID, "M", 1)
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)

		p := reload(t, repo, sized.ID)
		assert.Equal(t, 5, p.TotalStock)
		assert.Equal(t, 2, p.SalesCount)
	})

	t.Run("product without sizes uses total stock", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			return DecrementStock(tx, plain.ID, "", 2)
		})
		require.NoError(t, err)

		err = db.Transaction(func(tx *gorm.DB) error {
			return DecrementStock(tx, plain.ID, "", 2)
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)

		p := reload(t, repo, plain.ID)
		assert.Equal(t, 1, p.TotalStock)
		assert.Equal(t, 2, p.SalesCount)
	})
}

func TestGormRepositoryDeleteRemovesRows(t *testing.T) {
	ctx := context.Background()
	repo, db := openCatalog(t)

	p := &Product{Title: "Linen Shirt", Category: "men", Price: 2000, IsActive: true,
		Sizes: []Size{{Size: "M", Stock: 2}}}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	var products, sizes int64
	require.NoError(t, db.Model(&Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&Size{}).Count(&sizes).Error)
	assert.Zero(t, products)
	assert.Zero(t, sizes)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrProductNotFound)
}

func TestGormReviewDuplicate(t *testing.T) {
	ctx := context.Background()
	repo, _ := openCatalog(t)
	p := &Product{Title: "Linen Shirt", Category: "men", Price: 2000, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))

	reviews := repo.Reviews()
	require.NoError(t, reviews.Create(ctx, &Review{ProductID: p.ID, UserID: 7, Message: "fits well", Value: 5}))

	// a second insert that slipped past Exists still reports the domain error
	err := reviews.Create(ctx, &Review{ProductID: p.ID, UserID: 7, Message: "again", Value: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	list, err := reviews.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
