// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/audit"
)

// ErrEmptyKeyword is returned by search when there is nothing to match
var ErrEmptyKeyword = errors.New("search keyword is required")

// Service handles product business logic
type Service struct {
	repo     Repository
	recorder audit.Recorder
}

// NewService creates a new product service
func NewService(repo Repository, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// ListRequest represents storefront listing query parameters
type ListRequest struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
	SortBy   string `form:"sortBy,default=price-lowtohigh"`
	Featured bool   `form:"featured"`
}

// SizeInput is one size row of an admin product form
type SizeInput struct {
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// ProductRequest represents admin create and edit data
type ProductRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Category    string      `json:"category" binding:"required"`
	Subcategory string      `json:"subcategory"`
	Brand       string      `json:"brand"`
	Price       int64       `json:"price" binding:"required,gt=0"`
	SalePrice   int64       `json:"salePrice" binding:"min=0"`
	Colors      []string    `json:"colors"`
	Sizes       []SizeInput `json:"sizes" binding:"dive"`
	TotalStock  int         `json:"totalStock" binding:"min=0"`
	IsActive    *bool       `json:"isActive"`
	IsFeatured  bool        `json:"isFeatured"`
}

// GetFilteredProducts lists active products by comma separated categories
// and brands, sorted by one of the storefront sort keys
func (s *Service) GetFilteredProducts(ctx context.Context, req *ListRequest) ([]Product, error) {
	return s.repo.List(ctx, Filter{
		Categories:   splitList(req.Category),
		Brands:       splitList(req.Brand),
		SortBy:       req.SortBy,
		FeaturedOnly: req.Featured,
	})
}

// GetProductDetails returns an active product
func (s *Service) GetProductDetails(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// GetProduct returns a product regardless of its active flag
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// GetProductsByIDs returns the products that still exist, keyed by id
func (s *Service) GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]*Product, error) {
	products, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

// SearchProducts matches active products by keyword
func (s *Service) SearchProducts(ctx context.Context, keyword string) ([]Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	return s.repo.Search(ctx, keyword)
}

// FetchAllProducts lists every product for the admin panel
func (s *Service) FetchAllProducts(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx, Filter{IncludeInactive: true, SortBy: SortTitleAToZ})
}

// AddProduct creates a product, deriving totalStock from sizes
func (s *Service) AddProduct(ctx context.Context, actorID uint, req *ProductRequest) (*Product, error) {
	p := &Product{}
	if err := applyRequest(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, audit.Event{
		EntityType: audit.EntityProduct,
		EntityID:   p.ID,
		Action:     audit.ActionProductCreated,
		ActorID:    actorID,
		Note:       p.Title,
	})

	return p, nil
}

// EditProduct replaces a product's editable fields and sizes
func (s *Service) EditProduct(ctx context.Context, actorID, id uint, req *ProductRequest) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := p.TotalStock
	if err := applyRequest(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, audit.Event{
		EntityType: audit.EntityProduct,
		EntityID:   p.ID,
		Action:     audit.ActionProductUpdated,
		ActorID:    actorID,
		From:       fmt.Sprintf("stock=%d", before),
		To:         fmt.Sprintf("stock=%d", p.TotalStock),
	})

	return p, nil
}

// DeleteProduct removes a product from the catalog
func (s *Service) DeleteProduct(ctx context.Context, actorID, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, audit.Event{
		EntityType: audit.EntityProduct,
		EntityID:   id,
		Action:     audit.ActionProductDeleted,
		ActorID:    actorID,
	})
	return nil
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	if err := s.recorder.Record(ctx, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"product_id": event.EntityID,
			"action":     event.Action,
		}).Warn("failed to record product activity")
	}
}

// applyRequest copies form data onto p and recomputes totalStock
func applyRequest(p *Product, req *ProductRequest) error {
	if req.SalePrice > 0 && req.SalePrice >= req.Price {
		return fmt.Errorf("%w: sale price must be lower than price", ErrInvalidProduct)
	}

	sizes := make([]Size, 0, len(req.Sizes))
	seen := make(map[string]bool, len(req.Sizes))
	for i, in := range req.Sizes {
		name := strings.TrimSpace(in.Size)
		if name == "" || seen[name] {
			return fmt.Errorf("%w: duplicate or empty size %q", ErrInvalidProduct, in.Size)
		}
		if in.Stock < 0 {
			return fmt.Errorf("%w: negative stock for size %s", ErrInvalidProduct, name)
		}
		seen[name] = true
		sizes = append(sizes, Size{Size: name, Stock: in.Stock, SortOrder: i})
	}

	colors := make([]string, 0, len(req.Colors))
	for _, c := range req.Colors {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}

	p.Title = strings.TrimSpace(req.Title)
	p.Description = req.Description
	p.Image = req.Image
	p.Category = req.Category
	p.Subcategory = req.Subcategory
	p.Brand = req.Brand
	p.Price = req.Price
	p.SalePrice = req.SalePrice
	p.Colors = colors
	p.Sizes = sizes
	p.TotalStock = req.TotalStock
	p.IsFeatured = req.IsFeatured
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	} else if p.ID == 0 {
		p.IsActive = true
	}
	p.RecomputeTotalStock()

	return nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
