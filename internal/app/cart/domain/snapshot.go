package domain

import (
	"time"

	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Snapshot is the serialisable state of a cart, used by the cache and the
// HTTP layer.
type Snapshot struct {
	ID        string         `json:"id"`
	Items     []CartItem     `json:"items"`
	Coupon    *coupon.Coupon `json:"coupon,omitempty"`
	Version   int64          `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Snapshot copies the cart's state.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		ID:        c.id,
		Items:     c.Items(),
		Coupon:    c.Coupon(),
		Version:   c.version,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

// FromSnapshot rebuilds a clean cart from a snapshot.
func FromSnapshot(s Snapshot, clk clock.Clock) *Cart {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	var applied *coupon.Coupon
	if s.Coupon != nil {
		cp := *s.Coupon
		applied = &cp
	}
	return ReconstructCart(s.ID, items, applied, s.Version, s.CreatedAt, s.UpdatedAt, clk)
}

// View is a cart with its derived totals, computed on demand.
type View struct {
	Snapshot
	TotalItems     int         `json:"totalItems"`
	TotalPrice     money.Money `json:"totalPrice"`
	CouponDiscount money.Money `json:"couponDiscount"`
	Payable        money.Money `json:"payable"`
}

// View returns the cart with derived totals.
func (c *Cart) View() View {
	return View{
		Snapshot:       c.Snapshot(),
		TotalItems:     c.TotalItems(),
		TotalPrice:     c.TotalPrice(),
		CouponDiscount: c.CouponDiscount(),
		Payable:        c.Payable(),
	}
}

// OrderLines describes the cart's lines for coupon validation and order
// placement.
func (c *Cart) OrderLines() []coupon.OrderLine {
	lines := make([]coupon.OrderLine, 0, len(c.items))
	for i := range c.items {
		it := &c.items[i]
		lines = append(lines, coupon.OrderLine{
			ProductID:    it.ProductID,
			VariationID:  it.VariationID(),
			CategoryName: it.CategoryName,
			Quantity:     it.Quantity,
			Price:        it.EffectivePrice(),
		})
	}
	return lines
}
