// internal/infrastructure/database/postgres/seed.go
package postgres

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/domain/product"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/pkg/auth"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

type seedSize struct {
	Size  string `yaml:"size"`
	Stock int    `yaml:"stock"`
}

type seedProduct struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Image       string     `yaml:"image"`
	Category    string     `yaml:"category"`
	Subcategory string     `yaml:"subcategory"`
	Brand       string     `yaml:"brand"`
	Price       int64      `yaml:"price"`
	SalePrice   int64      `yaml:"salePrice"`
	Colors      []string   `yaml:"colors"`
	Featured    bool       `yaml:"featured"`
	TotalStock  int        `yaml:"totalStock"`
	Sizes       []seedSize `yaml:"sizes"`
}

type seedCatalog struct {
	Products []seedProduct `yaml:"products"`
}

// ParseCatalog reads a catalog seed document
func ParseCatalog(data []byte) ([]product.Product, error) {
	var doc seedCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	products := make([]product.Product, 0, len(doc.Products))
	for _, sp := range doc.Products {
		if sp.Title == "" || sp.Price <= 0 {
			return nil, fmt.Errorf("catalog seed: product %q needs a title and a positive price", sp.Title)
		}
		p := product.Product{
			Title:       sp.Title,
			Description: sp.Description,
			Image:       sp.Image,
			Category:    sp.Category,
			Subcategory: sp.Subcategory,
			Brand:       sp.Brand,
			Price:       sp.Price,
			SalePrice:   sp.SalePrice,
			Colors:      sp.Colors,
			IsActive:    true,
			IsFeatured:  sp.Featured,
			TotalStock:  sp.TotalStock,
		}
		for i, s := range sp.Sizes {
			p.Sizes = append(p.Sizes, product.Size{Size: s.Size, Stock: s.Stock, SortOrder: i})
		}
		p.RecomputeTotalStock()
		products = append(products, p)
	}
	return products, nil
}

// SeedInitialData creates the admin account and, on an empty catalog, the
// seed products. CATALOG_SEED_FILE replaces the built-in catalog.
func (m *Migration) SeedInitialData(cfg *config.Config) error {
	if err := m.seedAdminUser(cfg); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedCatalog(cfg.Catalog.SeedFile); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

func (m *Migration) seedAdminUser(cfg *config.Config) error {
	email := user.NormalizeEmail(cfg.Security.AdminEmail)
	if email == "" || cfg.Security.AdminPassword == "" {
		logrus.Debug("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := m.db.Model(&user.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.NewPasswordManager(cfg).HashPassword(cfg.Security.AdminPassword)
	if err != nil {
		return err
	}
	admin := user.User{
		Email:    email,
		UserName: "admin",
		Password: hashed,
		Role:     auth.RoleAdmin,
		IsActive: true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("email", email).Info("admin user created")
	return nil
}

func (m *Migration) seedCatalog(path string) error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		data = raw
	}

	products, err := ParseCatalog(data)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	if err := m.db.Create(&products).Error; err != nil {
		return err
	}
	logrus.WithField("products", len(products)).Info("catalog seeded")
	return nil
}
