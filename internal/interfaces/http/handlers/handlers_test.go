package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/order"
	"github.com/your-org/fashion-store/internal/domain/product"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/domain/wishlist"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// asUser stands in for the auth middleware
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func setupCart(t *testing.T) (*gin.Engine, *memoryCart) {
	t.Helper()
	repo := &memoryCart{}
	catalog := &memoryCatalog{products: map[uint]*product.Product{
		1: {
			ID: 1, Title: "Linen Shirt", Price: 2000, SalePrice: 1500, IsActive: true,
			Sizes: []product.Size{{Size: "M", Stock: 2}},
		},
	}}
	h := NewCartHandler(cart.NewService(repo, catalog))

	router := gin.New()
	group := router.Group("/cart", asUser(5))
	group.POST("/add", h.AddToCart)
	group.GET("/get", h.GetCart)
	group.DELETE("/:productId", h.RemoveFromCart)
	return router, repo
}

func TestCartHandler(t *testing.T) {
	t.Run("add within stock returns the summary", func(t *testing.T) {
		router, _ := setupCart(t)
		rec, env := do(t, router, http.MethodPost, "/cart/add", `{"productId":1,"quantity":2,"selectedSize":"M"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)

		var summary cart.Summary
		require.NoError(t, json.Unmarshal(env.Data, &summary))
		assert.Equal(t, 2, summary.TotalItems)
		assert.Equal(t, int64(3000), summary.Subtotal)
	})

	t.Run("add over stock is a 400 and leaves the cart alone", func(t *testing.T) {
		router, repo := setupCart(t)
		rec, env := do(t, router, http.MethodPost, "/cart/add", `{"productId":1,"quantity":3,"selectedSize":"M"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "insufficient stock")
		assert.Empty(t, repo.items)
	})

	t.Run("missing quantity fails binding", func(t *testing.T) {
		router, _ := setupCart(t)
		rec, env := do(t, router, http.MethodPost, "/cart/add", `{"productId":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Message, "Quantity")
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		router, _ := setupCart(t)
		rec, _ := do(t, router, http.MethodPost, "/cart/add", `{"productId":9,"quantity":1}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non numeric product id is a 400", func(t *testing.T) {
		router, _ := setupCart(t)
		rec, env := do(t, router, http.MethodDelete, "/cart/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid productId", env.Message)
	})
}

func TestOrderStatusBinding(t *testing.T) {
	require.NoError(t, RegisterValidators())

	h := NewOrderHandler(order.NewService(order.Deps{}))
	router := gin.New()
	router.PUT("/orders/update/:id", asUser(1), h.AdminUpdateOrderStatus)

	rec, env := do(t, router, http.MethodPut, "/orders/update/3", `{"orderStatus":"teleported"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "orderstatus")
}

func TestStatusFor(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{fmt.Errorf("product 3 size M: %w", product.ErrInsufficientStock), http.StatusBadRequest},
		{order.ErrOrderNotFound, http.StatusNotFound},
		{user.ErrInvalidCredentials, http.StatusUnauthorized},
		{user.ErrEmailTaken, http.StatusConflict},
		{product.ErrNotPurchased, http.StatusForbidden},
		{wishlist.ErrAlreadyInWishlist, http.StatusBadRequest},
		{order.ErrAdminNotesRequired, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	} {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		respondError(c, errors.New("pq: password authentication failed"), "Failed to retrieve orders")
	})

	rec, env := do(t, router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve orders", env.Message)
}

type memoryCart struct {
	nextID uint
	items  []cart.CartItem
}

func (m *memoryCart) ListByUser(_ context.Context, userID uint) ([]cart.CartItem, error) {
	var out []cart.CartItem
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryCart) FindLine(_ context.Context, userID, productID uint, size, color string) (*cart.CartItem, error) {
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID && item.SelectedSize == size && item.SelectedColor == color {
			clone := item
			return &clone, nil
		}
	}
	return nil, cart.ErrItemNotFound
}

func (m *memoryCart) Save(_ context.Context, item *cart.CartItem) error {
	if item.ID == 0 {
		m.nextID++
		item.ID = m.nextID
		m.items = append(m.items, *item)
		return nil
	}
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
		}
	}
	return nil
}

func (m *memoryCart) DeleteLine(_ context.Context, userID, productID uint, size, color string) error {
	for i, item := range m.items {
		if item.UserID == userID && item.ProductID == productID && item.SelectedSize == size && item.SelectedColor == color {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return cart.ErrItemNotFound
}

func (m *memoryCart) DeleteByIDs(_ context.Context, ids []uint) error {
	drop := make(map[uint]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.items[:0]
	for _, item := range m.items {
		if !drop[item.ID] {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

func (m *memoryCart) Clear(_ context.Context, userID uint) error {
	kept := m.items[:0]
	for _, item := range m.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

type memoryCatalog struct {
	products map[uint]*product.Product
}

func (m *memoryCatalog) GetProduct(_ context.Context, id uint) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (m *memoryCatalog) GetProductsByIDs(_ context.Context, ids []uint) (map[uint]*product.Product, error) {
	out := make(map[uint]*product.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
