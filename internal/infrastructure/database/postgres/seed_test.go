package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	t.Run("built-in catalog", func(t *testing.T) {
		products, err := ParseCatalog(defaultCatalog)
		require.NoError(t, err)
		require.NotEmpty(t, products)

		shirt := products[0]
		assert.Equal(t, "Linen Relaxed Shirt", shirt.Title)
		assert.Equal(t, 34, shirt.TotalStock)
		assert.True(t, shirt.IsActive)
		assert.Equal(t, int64(199900), shirt.EffectivePrice())

		for _, p := range products {
			if !p.HasSizes() {
				assert.Positive(t, p.TotalStock, p.Title)
			}
		}
	})

	t.Run("rejects products without a price", func(t *testing.T) {
		_, err := ParseCatalog([]byte("products:\n  - title: Free Hat\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseCatalog([]byte("products: [\n"))
		assert.Error(t, err)
	})
}
