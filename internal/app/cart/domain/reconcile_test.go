package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func line(id string, qty int, unit int64) CartItem {
	item := CartItem{ProductID: id, Name: id, Active: true, Quantity: qty, UnitPrice: money.FromInt(unit)}
	item.Recompute()
	return item
}

func product(id string, unit int64, available int) catalog.Product {
	return catalog.Product{ID: id, Name: id, UnitPrice: money.FromInt(unit), AvailableQuantity: available, Active: true}
}

func byID(products ...catalog.Product) map[string]catalog.Product {
	m := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func TestReconcile_NoDrift(t *testing.T) {
	items := []CartItem{line("a", 2, 100)}
	res := Reconcile(items, byID(product("a", 100, 5)))

	assert.False(t, res.HasChanges)
	assert.Empty(t, res.Changes)
	require.Len(t, res.UpdatedCart, 1)
	assert.True(t, res.UpdatedCart[0].TotalPrice.Equals(money.FromInt(200)))
}

func TestReconcile_RemovedProduct(t *testing.T) {
	items := []CartItem{line("a", 1, 100), line("gone", 1, 100)}
	res := Reconcile(items, byID(product("a", 100, 5)))

	assert.True(t, res.HasChanges)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, "gone", res.Changes[0].ProductID)
	assert.True(t, res.Changes[0].ProductRemoved)
	require.Len(t, res.UpdatedCart, 1)
	assert.Equal(t, "a", res.UpdatedCart[0].ProductID)
	assert.Equal(t, 1, res.Dropped())
}

func TestReconcile_ZeroAvailabilityIsInactive(t *testing.T) {
	items := []CartItem{line("a", 1, 100)}
	res := Reconcile(items, byID(product("a", 50, 0)))

	require.Len(t, res.Changes, 1)
	c := res.Changes[0]
	assert.True(t, c.ProductInactive)
	assert.Nil(t, c.PriceChanged, "short-circuits before the comparisons")
	assert.Empty(t, res.UpdatedCart)
}

func TestReconcile_InactiveStatus(t *testing.T) {
	p := product("a", 100, 5)
	p.Active = false
	res := Reconcile([]CartItem{line("a", 1, 100)}, byID(p))

	require.Len(t, res.Changes, 1)
	assert.True(t, res.Changes[0].ProductInactive)
	assert.Empty(t, res.UpdatedCart)
}

func TestReconcile_QuantityCap(t *testing.T) {
	res := Reconcile([]CartItem{line("a", 10, 100)}, byID(product("a", 100, 3)))

	require.Len(t, res.Changes, 1)
	assert.Equal(t, &QuantityDelta{Old: 10, New: 3, Available: 3}, res.Changes[0].QuantityChanged)
	require.Len(t, res.UpdatedCart, 1)
	assert.Equal(t, 3, res.UpdatedCart[0].Quantity)
	assert.True(t, res.UpdatedCart[0].TotalPrice.Equals(money.FromInt(300)))
}

func TestReconcile_PriceDrift(t *testing.T) {
	res := Reconcile([]CartItem{line("a", 2, 500)}, byID(product("a", 450, 10)))

	require.Len(t, res.Changes, 1)
	pc := res.Changes[0].PriceChanged
	require.NotNil(t, pc)
	assert.True(t, pc.Old.Equals(money.FromInt(500)))
	assert.True(t, pc.New.Equals(money.FromInt(450)))
	assert.True(t, pc.Difference.Equals(money.FromInt(-50)))

	dp := res.Changes[0].DiscountedPriceChanged
	require.NotNil(t, dp, "effective price moved with the unit price")
	assert.True(t, dp.Difference.Equals(money.FromInt(-50)))
	assert.Nil(t, res.Changes[0].DiscountChanged)
	assert.Nil(t, res.Changes[0].QuantityChanged)

	updated := res.UpdatedCart[0]
	assert.True(t, updated.UnitPrice.Equals(money.FromInt(450)))
	assert.True(t, updated.TotalPrice.Equals(money.FromInt(900)))
}

func TestReconcile_DiscountDrift(t *testing.T) {
	item := line("a", 1, 500)
	item.UpdatedPrice = ptr(money.FromInt(450))
	item.Recompute()

	p := product("a", 500, 5)
	p.DiscountedPrice = ptr(money.FromInt(400))

	res := Reconcile([]CartItem{item}, byID(p))
	require.Len(t, res.Changes, 1)
	c := res.Changes[0]
	assert.Nil(t, c.PriceChanged)
	require.NotNil(t, c.DiscountChanged)
	assert.True(t, c.DiscountChanged.Old.Equals(money.FromInt(50)))
	assert.True(t, c.DiscountChanged.New.Equals(money.FromInt(100)))
	require.NotNil(t, c.DiscountedPriceChanged)
	assert.True(t, c.DiscountedPriceChanged.Difference.Equals(money.FromInt(-50)))
	assert.True(t, res.UpdatedCart[0].HasDiscount)
}

func TestReconcile_DiscountEnded(t *testing.T) {
	item := line("a", 1, 500)
	item.UpdatedPrice = ptr(money.FromInt(450))
	item.Recompute()

	res := Reconcile([]CartItem{item}, byID(product("a", 500, 5)))
	require.Len(t, res.Changes, 1)
	assert.True(t, res.Changes[0].DiscountChanged.New.IsZero())
	updated := res.UpdatedCart[0]
	assert.Nil(t, updated.UpdatedPrice)
	assert.False(t, updated.HasDiscount)
	assert.True(t, updated.TotalPrice.Equals(money.FromInt(500)))
}

func TestReconcile_StaleTotalIsRecomputedSilently(t *testing.T) {
	item := line("a", 2, 100)
	item.TotalPrice = money.FromInt(1)

	res := Reconcile([]CartItem{item}, byID(product("a", 100, 5)))
	assert.False(t, res.HasChanges)
	assert.True(t, res.UpdatedCart[0].TotalPrice.Equals(money.FromInt(200)))
}

func TestReconcile_VanishedVariationIsRemoved(t *testing.T) {
	item := line("a", 1, 100)
	item.HasVariations = true
	item.Variation = &Variation{ID: "gone"}
	p := product("a", 100, 5)
	p.Variations = []catalog.Variation{{ID: "other", AvailableQuantity: 5}}

	res := Reconcile([]CartItem{item}, byID(p))
	require.Len(t, res.Changes, 1)
	assert.True(t, res.Changes[0].ProductRemoved)
	assert.Equal(t, "gone", res.Changes[0].VariationID)
}

func TestReconcile_VariationStock(t *testing.T) {
	item := line("a", 4, 100)
	item.HasVariations = true
	item.Variation = &Variation{ID: "m", AvailableQuantity: 9}
	p := product("a", 100, 50)
	p.Variations = []catalog.Variation{{ID: "m", Price: money.FromInt(100), AvailableQuantity: 2}}

	res := Reconcile([]CartItem{item}, byID(p))
	require.Len(t, res.Changes, 1)
	assert.Equal(t, 2, res.Changes[0].QuantityChanged.Available)
	assert.Equal(t, 2, res.UpdatedCart[0].Variation.AvailableQuantity)
	assert.Equal(t, 9, item.Variation.AvailableQuantity, "input untouched")
}

func TestReconcile_Idempotent(t *testing.T) {
	discounted := line("b", 1, 300)
	discounted.UpdatedPrice = ptr(money.FromInt(280))
	discounted.Recompute()

	items := []CartItem{line("a", 10, 500), discounted, line("gone", 1, 10), line("empty", 1, 10)}
	pb := product("b", 320, 4)
	pb.DiscountedPrice = ptr(money.FromInt(250))
	products := byID(product("a", 450, 3), pb, product("empty", 10, 0))

	first := Reconcile(items, products)
	require.True(t, first.HasChanges)
	assert.Len(t, first.Changes, 4)

	second := Reconcile(first.UpdatedCart, products)
	assert.False(t, second.HasChanges)
	assert.Empty(t, second.Changes)
	assert.Equal(t, first.UpdatedCart, second.UpdatedCart)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	items := []CartItem{line("a", 10, 500)}
	_ = Reconcile(items, byID(product("a", 450, 3)))

	assert.Equal(t, 10, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equals(money.FromInt(500)))
}
