// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/feature"
	"github.com/your-org/fashion-store/internal/domain/order"
	"github.com/your-org/fashion-store/internal/domain/product"
	"github.com/your-org/fashion-store/internal/domain/upload"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/domain/wishlist"
	"gorm.io/gorm"
)

// Migration owns schema setup for the store tables
type Migration struct {
	db *gorm.DB
}

func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// schema lists the models in foreign key order: users before addresses and
// orders, products before sizes, reviews and line items
func schema() []interface{} {
	return []interface{}{
		&user.User{}, &user.Address{},
		&product.Product{}, &product.Size{}, &product.Review{},
		&cart.CartItem{},
		&order.Order{}, &order.OrderItem{},
		&wishlist.WishlistItem{},
		&upload.UploadedFile{},
		&feature.FeatureImage{},
	}
}

// RunAutoMigrations creates or alters every store table
func (m *Migration) RunAutoMigrations() error {
	models := schema()
	if err := m.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logrus.WithField("tables", len(models)).Info("schema up to date")
	return nil
}

// storeIndexes are the composite and partial indexes struct tags cannot
// express. The partial ones keep the admin "pending requests" queue cheap.
var storeIndexes = []struct {
	name, def string
}{
	{"idx_products_active_category", "products(is_active, category)"},
	{"idx_products_active_brand", "products(is_active, brand)"},
	{"idx_products_sales", "products(sales_count DESC)"},
	{"idx_orders_user_date", "orders(user_id, order_date DESC)"},
	{"idx_orders_payment_status", "orders(payment_status)"},
	{"idx_orders_cancellation_pending", "orders(cancellation_status) WHERE cancellation_status = 'pending'"},
	{"idx_orders_return_pending", "orders(return_status) WHERE return_status = 'pending'"},
}

// CreateIndexes attempts every index and reports how many failed
func (m *Migration) CreateIndexes() error {
	var failed []string
	for _, idx := range storeIndexes {
		stmt := "CREATE INDEX IF NOT EXISTS " + idx.name + " ON " + idx.def
		if err := m.db.Exec(stmt).Error; err != nil {
			logrus.WithError(err).WithField("index", idx.name).Warn("index not created")
			failed = append(failed, idx.name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d indexes failed: %v", len(failed), len(storeIndexes), failed)
	}
	return nil
}
