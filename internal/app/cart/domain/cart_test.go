package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

var t0 = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func ptr(m money.Money) *money.Money { return &m }

func shirt(qty int) CartItem {
	return CartItem{
		ProductID:     "p1",
		Name:          "Oxford Shirt",
		Active:        true,
		Quantity:      qty,
		UnitPrice:     money.FromInt(500),
		UpdatedPrice:  ptr(money.FromInt(450)),
		HasVariations: true,
		Variation:     &Variation{ID: "v-m", Size: "M", Price: money.FromInt(500), AvailableQuantity: 10},
		MaxQuantity:   10,
	}
}

func newTestCart() (*Cart, *clock.MockClock) {
	clk := clock.NewMockClock(t0)
	return NewCart("cart-1", clk), clk
}

func TestCart_AddMergesSameProductAndVariation(t *testing.T) {
	c, _ := newTestCart()

	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.Add(shirt(1)))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].TotalPrice.Equals(money.FromInt(900)))
	assert.True(t, items[0].Discount.Equals(money.FromInt(100)))
	assert.True(t, items[0].HasDiscount)
	assert.Len(t, c.DomainEvents(), 2)
	assert.Equal(t, "cart.item_added", c.DomainEvents()[1].EventType())
}

func TestCart_AddDifferentVariationAppends(t *testing.T) {
	c, _ := newTestCart()
	large := shirt(1)
	large.Variation = &Variation{ID: "v-l", Size: "L"}

	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.Add(large))

	assert.Len(t, c.Items(), 2)
	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_AddWithoutVariationsIgnoresVariation(t *testing.T) {
	c, _ := newTestCart()
	plain := CartItem{ProductID: "p2", Quantity: 1, UnitPrice: money.FromInt(100)}

	require.NoError(t, c.Add(plain))
	require.NoError(t, c.Add(plain))
	assert.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestCart_AddRejectsMergeBeyondStock(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(8)))
	c.ClearEvents()

	err := c.Add(shirt(3))
	assert.ErrorIs(t, err, ErrQuantityExceedsStock)
	assert.Equal(t, 8, c.Items()[0].Quantity, "cart unchanged")
	assert.Empty(t, c.DomainEvents())
}

func TestCart_AddValidates(t *testing.T) {
	c, _ := newTestCart()

	assert.ErrorIs(t, c.Add(shirt(0)), ErrInvalidQuantity)

	noVariation := shirt(1)
	noVariation.Variation = nil
	assert.ErrorIs(t, c.Add(noVariation), ErrVariationRequired)

	assert.ErrorIs(t, c.Add(CartItem{Quantity: 1}), ErrInvalidItem)
	assert.True(t, c.IsEmpty())
}

func TestCart_Update(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(1)))

	updated := shirt(4)
	require.NoError(t, c.Update(updated))
	assert.Equal(t, 4, c.Items()[0].Quantity)
	assert.True(t, c.Items()[0].TotalPrice.Equals(money.FromInt(1800)))

	other := shirt(1)
	other.ProductID = "missing"
	assert.ErrorIs(t, c.Update(other), ErrItemNotFound)
}

func TestCart_RemoveAt(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.Add(CartItem{ProductID: "p2", Name: "Belt", Quantity: 1, UnitPrice: money.FromInt(100)}))
	c.ClearEvents()

	_, err := c.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = c.RemoveAt(2)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	removed, err := c.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, "p1", removed.ProductID)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "p2", c.Items()[0].ProductID)

	require.Len(t, c.DomainEvents(), 1)
	ev := c.DomainEvents()[0].(*CartItemRemovedEvent)
	assert.Equal(t, "Oxford Shirt", ev.Name)
	assert.Equal(t, "v-m", ev.VariationID)
}

func TestCart_Totals(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(2)))
	require.NoError(t, c.Add(CartItem{ProductID: "p2", Quantity: 3, UnitPrice: money.MustParse("99.50")}))

	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, c.TotalPrice().Equals(money.MustParse("1198.50")))
}

func TestCart_Clear(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.ApplyCoupon(coupon.Coupon{Code: "X", DiscountType: coupon.DiscountFixed, DiscountValue: money.FromInt(10), DiscountAmount: money.FromInt(10)}))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Coupon())
	assert.True(t, c.TotalPrice().IsZero())
	assert.Equal(t, "cart.cleared", c.DomainEvents()[len(c.DomainEvents())-1].EventType())
}

func TestCart_CouponSlot(t *testing.T) {
	c, _ := newTestCart()
	pct := coupon.Coupon{Code: "TEN", DiscountType: coupon.DiscountPercentage, DiscountValue: money.FromInt(10), DiscountAmount: money.FromInt(45)}

	assert.ErrorIs(t, c.ApplyCoupon(pct), ErrCartEmpty)

	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.ApplyCoupon(pct))
	assert.True(t, c.Payable().Equals(money.FromInt(405)))

	fixed := coupon.Coupon{Code: "FIFTY", DiscountType: coupon.DiscountFixed, DiscountValue: money.FromInt(50), DiscountAmount: money.FromInt(50)}
	require.NoError(t, c.ApplyCoupon(fixed))
	assert.Equal(t, "FIFTY", c.Coupon().Code, "new coupon replaces the old one")

	require.NoError(t, c.RemoveCoupon())
	assert.Nil(t, c.Coupon())
	assert.True(t, c.Payable().Equals(c.TotalPrice()))
	assert.ErrorIs(t, c.RemoveCoupon(), ErrNoCouponApplied)
}

func TestCart_PercentageCouponFollowsTotal(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.ApplyCoupon(coupon.Coupon{Code: "TEN", DiscountType: coupon.DiscountPercentage, DiscountValue: money.FromInt(10), DiscountAmount: money.FromInt(45)}))

	require.NoError(t, c.Add(shirt(1)))
	got := c.Coupon()
	assert.True(t, got.DiscountAmount.Equals(money.FromInt(90)))
	assert.True(t, got.Provisional)
}

func TestCart_CouponWithoutValueKeepsBackendAmount(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(1)))
	require.NoError(t, c.ApplyCoupon(coupon.Coupon{Code: "WELCOME", DiscountType: coupon.DiscountFixed, DiscountAmount: money.FromInt(100)}))

	require.NoError(t, c.Add(shirt(1)))
	got := c.Coupon()
	assert.True(t, got.DiscountAmount.Equals(money.FromInt(100)))
	assert.False(t, got.Provisional)
}

func TestCart_MarkCommitted(t *testing.T) {
	c, _ := newTestCart()
	assert.True(t, c.Changes().HasChanges())
	c.MarkCommitted()
	assert.Equal(t, int64(1), c.Version())
	assert.False(t, c.Changes().HasChanges())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c, _ := newTestCart()
	require.NoError(t, c.Add(shirt(1)))

	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.Items()[0].Quantity)
}
