package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	productID := uuid.New()

	t.Run("composes the label from option values", func(t *testing.T) {
		v, err := NewVariant(productID, []OptionValue{
			{Name: "Color", Value: "Blue"},
			{Name: "Size", Value: "M"},
		}, price("19.90"), decimal.Zero)
		require.NoError(t, err)

		assert.Equal(t, "Blue / M", v.Label)
		assert.False(t, v.IsPublished())
	})

	t.Run("single option value has no separator", func(t *testing.T) {
		v, err := NewVariant(productID, []OptionValue{{Name: "Size", Value: "M"}}, price("10"), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "M", v.Label)
	})

	t.Run("requires a product", func(t *testing.T) {
		_, err := NewVariant(uuid.Nil, []OptionValue{{Name: "Size", Value: "M"}}, price("10"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("requires at least one option value", func(t *testing.T) {
		_, err := NewVariant(productID, nil, price("10"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects blank option names or values", func(t *testing.T) {
		_, err := NewVariant(productID, []OptionValue{{Name: " ", Value: "M"}}, price("10"), decimal.Zero)
		assert.Error(t, err)
		_, err = NewVariant(productID, []OptionValue{{Name: "Size", Value: ""}}, price("10"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := NewVariant(productID, []OptionValue{{Name: "Size", Value: "M"}}, price("-1"), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestVariantStockAndPlatform(t *testing.T) {
	v, err := NewVariant(uuid.New(), []OptionValue{{Name: "Size", Value: "M"}}, price("10"), decimal.Zero)
	require.NoError(t, err)

	t.Run("stock cannot go negative", func(t *testing.T) {
		assert.Error(t, v.SetStock(-1))
		require.NoError(t, v.SetStock(12))
		assert.Equal(t, 12, v.StockQuantity)
	})

	t.Run("linking platform IDs marks the variant published", func(t *testing.T) {
		v.LinkPlatform("gid://shopify/Product/100", "gid://shopify/ProductVariant/1001")
		assert.True(t, v.IsPublished())
		assert.Equal(t, "gid://shopify/Product/100", v.PlatformProductID)
	})
}

func TestValidateVariantSet(t *testing.T) {
	productID := uuid.New()
	mk := func(values ...OptionValue) Variant {
		v, err := NewVariant(productID, values, price("10"), decimal.Zero)
		require.NoError(t, err)
		return *v
	}

	t.Run("distinct combinations pass", func(t *testing.T) {
		err := ValidateVariantSet([]Variant{
			mk(OptionValue{Name: "Color", Value: "Blue"}, OptionValue{Name: "Size", Value: "M"}),
			mk(OptionValue{Name: "Color", Value: "Blue"}, OptionValue{Name: "Size", Value: "L"}),
		})
		assert.NoError(t, err)
	})

	t.Run("duplicate combination fails", func(t *testing.T) {
		err := ValidateVariantSet([]Variant{
			mk(OptionValue{Name: "Color", Value: "Blue"}, OptionValue{Name: "Size", Value: "M"}),
			mk(OptionValue{Name: "Color", Value: "Blue"}, OptionValue{Name: "Size", Value: "M"}),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Blue / M")
	})
}
