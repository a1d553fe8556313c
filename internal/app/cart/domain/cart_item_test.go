package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func panjabi() catalog.Product {
	return catalog.Product{
		ID:                "p1",
		Name:              "Panjabi",
		SKU:               "PJ-1",
		UnitPrice:         money.FromInt(1000),
		Discount:          catalog.Discount{Type: catalog.DiscountPercentage, Value: money.FromInt(10)},
		DiscountedPrice:   ptr(money.FromInt(900)),
		AvailableQuantity: 7,
		Active:            true,
		Variations: []catalog.Variation{
			{ID: "m", Size: "M", SKU: "PJ-1-M", Price: money.FromInt(1000), AvailableQuantity: 4},
			{ID: "xl", Size: "XL", SKU: "PJ-1-XL", Price: money.FromInt(1200), AvailableQuantity: 2},
			{ID: "xxl", Size: "XXL", Price: money.FromInt(1200), AvailableQuantity: 0},
		},
	}
}

func TestNewCartItem(t *testing.T) {
	p := panjabi()

	t.Run("variation with product price", func(t *testing.T) {
		item, err := NewCartItem(&p, "m", 2)
		require.NoError(t, err)
		assert.Equal(t, "p1:m", item.Key())
		assert.Equal(t, "PJ-1-M", item.SKU)
		assert.Equal(t, 4, item.MaxQuantity)
		assert.True(t, item.TotalPrice.Equals(money.FromInt(1800)))
	})

	t.Run("variation with own price gets the product discount", func(t *testing.T) {
		item, err := NewCartItem(&p, "xl", 1)
		require.NoError(t, err)
		assert.True(t, item.UnitPrice.Equals(money.FromInt(1200)))
		require.NotNil(t, item.UpdatedPrice)
		assert.True(t, item.UpdatedPrice.Equals(money.FromInt(1080)))
	})

	t.Run("variation required", func(t *testing.T) {
		_, err := NewCartItem(&p, "", 1)
		assert.ErrorIs(t, err, ErrVariationRequired)
	})

	t.Run("unknown variation", func(t *testing.T) {
		_, err := NewCartItem(&p, "s", 1)
		assert.ErrorIs(t, err, ErrVariationNotFound)
	})

	t.Run("out of stock", func(t *testing.T) {
		_, err := NewCartItem(&p, "xxl", 1)
		assert.ErrorIs(t, err, ErrOutOfStock)
	})

	t.Run("more than available", func(t *testing.T) {
		_, err := NewCartItem(&p, "xl", 3)
		assert.ErrorIs(t, err, ErrQuantityExceedsStock)
	})

	t.Run("inactive product", func(t *testing.T) {
		plain := panjabi()
		plain.Variations = nil
		plain.Active = false
		_, err := NewCartItem(&plain, "", 1)
		assert.ErrorIs(t, err, ErrOutOfStock)
	})
}

func TestCartItem_Recompute(t *testing.T) {
	item := CartItem{ProductID: "p", Quantity: 3, UnitPrice: money.FromInt(200)}
	item.Recompute()
	assert.True(t, item.TotalPrice.Equals(money.FromInt(600)))
	assert.False(t, item.HasDiscount)
	assert.True(t, item.Discount.IsZero())

	item.UpdatedPrice = ptr(money.FromInt(150))
	item.Recompute()
	assert.True(t, item.TotalPrice.Equals(money.FromInt(450)))
	assert.True(t, item.Discount.Equals(money.FromInt(150)))
	assert.True(t, item.HasDiscount)
}

func TestItemKey(t *testing.T) {
	assert.Equal(t, "p1", ItemKey("p1", ""))
	assert.Equal(t, "p1:v2", ItemKey("p1", "v2"))

	item := CartItem{ProductID: "p1", Variation: &Variation{ID: "v2"}}
	assert.Equal(t, "p1", item.Key(), "variation ignored when the product has none")
}
