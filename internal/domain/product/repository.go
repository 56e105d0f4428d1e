// internal/domain/product/repository.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Sort keys accepted by the storefront listing
const (
	SortPriceLowToHigh = "price-lowtohigh"
	SortPriceHighToLow = "price-hightolow"
	SortTitleAToZ      = "title-atoz"
	SortTitleZToA      = "title-ztoa"
)

// Filter narrows a product listing
type Filter struct {
	Categories      []string
	Brands          []string
	SortBy          string
	IncludeInactive bool
	FeaturedOnly    bool
}

// Repository is the product persistence contract
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)
	Search(ctx context.Context, keyword string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

// ReviewRepository is the review persistence contract
type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	Exists(ctx context.Context, productID, userID uint) (bool, error)
	ListByProduct(ctx context.Context, productID uint) ([]Review, error)
	SetAverage(ctx context.Context, productID uint, average float64) error
}

// GormRepository implements Repository and ReviewRepository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed product repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func preloadSizes(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// List retrieves products matching the filter
func (r *GormRepository) List(ctx context.Context, filter Filter) ([]Product, error) {
	var products []Product

	query := r.db.WithContext(ctx).Model(&Product{}).Preload("Sizes", preloadSizes)

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if len(filter.Brands) > 0 {
		query = query.Where("brand IN ?", filter.Brands)
	}

	query = query.Order(buildOrderClause(filter.SortBy))

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product, active or not
func (r *GormRepository) FindByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).
		Preload("Sizes", preloadSizes).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// FindByIDs retrieves the products that still exist among ids
func (r *GormRepository) FindByIDs(ctx context.Context, ids []uint) ([]Product, error) {
	var products []Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Sizes", preloadSizes).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// Search matches active products by keyword across text fields
func (r *GormRepository) Search(ctx context.Context, keyword string) ([]Product, error) {
	var products []Product
	search := "%" + strings.ToLower(keyword) + "%"
	err := r.db.WithContext(ctx).
		Preload("Sizes", preloadSizes).
		Where("is_active = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(brand) LIKE ?",
			search, search, search, search).
		Order("sales_count DESC, id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// Create inserts a product with its sizes
func (r *GormRepository) Create(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves product fields and replaces its sizes
func (r *GormRepository) Update(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sizes").Save(p).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&Size{}).Error; err != nil {
			return fmt.Errorf("failed to clear product sizes: %w", err)
		}
		for i := range p.Sizes {
			p.Sizes[i].ID = 0
			p.Sizes[i].ProductID = p.ID
		}
		if len(p.Sizes) > 0 {
			if err := tx.Create(&p.Sizes).Error; err != nil {
				return fmt.Errorf("failed to save product sizes: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a product row and its sizes. Orders keep their own
// snapshot of the item, and carts and wishlists drop or flag it on read.
func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	var result *gorm.DB
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&Size{}).Error; err != nil {
			return err
		}
		result = tx.Where("id = ?", id).Delete(&Product{})
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock removes quantity units of a size from stock inside tx and
// bumps the sales counter. The update only applies while enough stock is
// left, so it fails with ErrInsufficientStock instead of going negative.
func DecrementStock(tx *gorm.DB, productID uint, size string, quantity int) error {
	var sizeCount int64
	if err := tx.Model(&Size{}).Where("product_id = ?", productID).Count(&sizeCount).Error; err != nil {
		return fmt.Errorf("failed to read product sizes: %w", err)
	}

	if sizeCount == 0 {
		result := tx.Model(&Product{}).
			Where("id = ? AND total_stock >= ?", productID, quantity).
			Updates(map[string]interface{}{
				"total_stock": gorm.Expr("total_stock - ?", quantity),
				"sales_count": gorm.Expr("sales_count + ?", quantity),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to decrement stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
		}
		return nil
	}

	result := tx.Model(&Size{}).
		Where("product_id = ? AND size = ? AND stock >= ?", productID, size, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement size stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d size %s: %w", productID, size, ErrInsufficientStock)
	}

	err := tx.Model(&Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"total_stock": gorm.Expr("(SELECT COALESCE(SUM(stock), 0) FROM product_sizes WHERE product_id = ?)", productID),
			"sales_count": gorm.Expr("sales_count + ?", quantity),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to recompute total stock: %w", err)
	}
	return nil
}

// Reviews returns the ReviewRepository view of the gorm repository
func (r *GormRepository) Reviews() ReviewRepository {
	return gormReviewRepository{r}
}

type gormReviewRepository struct {
	repo *GormRepository
}

func (g gormReviewRepository) Create(ctx context.Context, review *Review) error {
	if err := g.repo.db.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (g gormReviewRepository) Exists(ctx context.Context, productID, userID uint) (bool, error) {
	var count int64
	err := g.repo.db.WithContext(ctx).Model(&Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return count > 0, nil
}

func (g gormReviewRepository) ListByProduct(ctx context.Context, productID uint) ([]Review, error) {
	var reviews []Review
	err := g.repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

func (g gormReviewRepository) SetAverage(ctx context.Context, productID uint, average float64) error {
	err := g.repo.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", productID).
		Update("average_review", average).Error
	if err != nil {
		return fmt.Errorf("failed to update average review: %w", err)
	}
	return nil
}

// buildOrderClause maps a storefront sort key to an ORDER BY clause
func buildOrderClause(sortBy string) string {
	switch sortBy {
	case SortPriceHighToLow:
		return "price DESC, id ASC"
	case SortTitleAToZ:
		return "title ASC, id ASC"
	case SortTitleZToA:
		return "title DESC, id ASC"
	default:
		return "price ASC, id ASC"
	}
}
