// internal/domain/product/entity.go
package product

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidSize        = errors.New("selected size is not offered for this product")
	ErrInvalidColor       = errors.New("selected color is not offered for this product")
	ErrInvalidProduct     = errors.New("invalid product data")
)

// Product represents a catalog item. Prices are in minor currency units.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null;size:255" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Image         string         `gorm:"size:500" json:"image"`
	Category      string         `gorm:"not null;size:100;index" json:"category"`
	Subcategory   string         `gorm:"size:100" json:"subcategory"`
	Brand         string         `gorm:"size:100;index" json:"brand"`
	Price         int64          `gorm:"not null" json:"price"`
	SalePrice     int64          `gorm:"default:0" json:"salePrice"`
	Colors        pq.StringArray `gorm:"type:text[]" json:"colors"`
	Sizes         []Size         `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sizes"`
	TotalStock    int            `gorm:"default:0" json:"totalStock"`
	// No gorm default here: a defaulted bool drops false from the INSERT
	IsActive      bool           `gorm:"not null;index" json:"isActive"`
	IsFeatured    bool           `gorm:"not null" json:"isFeatured"`
	SalesCount    int            `gorm:"default:0" json:"salesCount"`
	AverageReview float64        `gorm:"default:0" json:"averageReview"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Size is one purchasable size of a product with its own stock
type Size struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_size" json:"-"`
	Size      string `gorm:"not null;size:20;uniqueIndex:idx_product_size" json:"size"`
	Stock     int    `gorm:"not null;default:0" json:"stock"`
	SortOrder int    `gorm:"default:0" json:"-"`
}

// Review is a customer rating of a product they bought
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"productId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"userId"`
	UserName  string    `gorm:"size:100" json:"userName"`
	Message   string    `gorm:"type:text" json:"reviewMessage"`
	Value     int       `gorm:"not null;check:value >= 1 AND value <= 5" json:"reviewValue"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides
func (Product) TableName() string { return "products" }
func (Size) TableName() string    { return "product_sizes" }
func (Review) TableName() string  { return "product_reviews" }

// EffectivePrice is the sale price when one is set, otherwise the list price
func (p *Product) EffectivePrice() int64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}

// HasSizes reports whether stock is tracked per size
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// StockFor returns the live stock for a size. Products without sizes use
// totalStock regardless of the size requested.
func (p *Product) StockFor(size string) (int, error) {
	if !p.HasSizes() {
		return p.TotalStock, nil
	}
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock, nil
		}
	}
	return 0, ErrInvalidSize
}

// AllowsColor reports whether color is one of the product's colors
func (p *Product) AllowsColor(color string) bool {
	if len(p.Colors) == 0 {
		return true
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// RecomputeTotalStock sets totalStock to the sum of size stock when sizes exist
func (p *Product) RecomputeTotalStock() {
	if !p.HasSizes() {
		return
	}
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	p.TotalStock = total
}

// IsLowStock reports whether totalStock is at or under the threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.TotalStock <= threshold
}

// ValidateLine checks that the product can be bought in the given size, color
// and quantity against its current stock reading.
func (p *Product) ValidateLine(size, color string, quantity int) error {
	if !p.IsActive {
		return ErrProductUnavailable
	}
	if !p.AllowsColor(color) {
		return ErrInvalidColor
	}
	stock, err := p.StockFor(size)
	if err != nil {
		return err
	}
	if stock < quantity {
		return ErrInsufficientStock
	}
	return nil
}
