package domain

import (
	"time"

	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Cart is the aggregate root for a shopper's intended purchase. It holds at
// most one applied coupon.
type Cart struct {
	id        string
	items     []CartItem
	coupon    *coupon.Coupon
	version   int64
	createdAt time.Time
	updatedAt time.Time

	clock clock.Clock

	changes *ChangeTracker
	events  []DomainEvent
}

// NewCart creates an empty cart.
func NewCart(id string, clk clock.Clock) *Cart {
	now := clk.Now()
	c := &Cart{
		id:        id,
		items:     make([]CartItem, 0),
		createdAt: now,
		updatedAt: now,
		clock:     clk,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
	c.changes.MarkDirty(FieldItems)
	c.changes.MarkDirty(FieldCoupon)
	return c
}

// ReconstructCart rebuilds a cart from storage.
func ReconstructCart(id string, items []CartItem, applied *coupon.Coupon, version int64, createdAt, updatedAt time.Time, clk clock.Clock) *Cart {
	if items == nil {
		items = make([]CartItem, 0)
	}
	return &Cart{
		id:        id,
		items:     items,
		coupon:    applied,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		clock:     clk,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
}

// Getters
func (c *Cart) ID() string                  { return c.id }
func (c *Cart) Version() int64              { return c.version }
func (c *Cart) CreatedAt() time.Time        { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time        { return c.updatedAt }
func (c *Cart) Changes() *ChangeTracker     { return c.changes }
func (c *Cart) DomainEvents() []DomainEvent { return c.events }
func (c *Cart) IsEmpty() bool               { return len(c.items) == 0 }

// Items returns a copy of the lines.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Coupon returns a copy of the applied coupon, or nil.
func (c *Cart) Coupon() *coupon.Coupon {
	if c.coupon == nil {
		return nil
	}
	cp := *c.coupon
	return &cp
}

// Add merges the item into a matching line or appends it. A merge that
// would exceed the line's stock ceiling is rejected and leaves the cart
// unchanged.
func (c *Cart) Add(item CartItem) error {
	if err := item.validate(); err != nil {
		return err
	}

	added := item.Quantity
	if idx := c.indexOf(item.Key()); idx >= 0 {
		existing := c.items[idx]
		ceiling := existing.MaxQuantity
		if item.MaxQuantity > 0 {
			ceiling = item.MaxQuantity
		}
		total := existing.Quantity + item.Quantity
		if ceiling > 0 && total > ceiling {
			return ErrQuantityExceedsStock
		}
		existing.Quantity = total
		existing.MaxQuantity = ceiling
		existing.Recompute()
		c.items[idx] = existing
		item = existing
	} else {
		item.Recompute()
		c.items = append(c.items, item)
	}

	c.touchItems()
	c.recordEvent(&CartItemAddedEvent{
		CartID:      c.id,
		ProductID:   item.ProductID,
		VariationID: item.VariationID(),
		Name:        item.Name,
		Quantity:    added,
		Price:       item.EffectivePrice(),
		AddedAt:     c.updatedAt,
	})
	return nil
}

// Update replaces the line with the same identity wholesale.
func (c *Cart) Update(item CartItem) error {
	if err := item.validate(); err != nil {
		return err
	}
	idx := c.indexOf(item.Key())
	if idx < 0 {
		return ErrItemNotFound
	}

	item.Recompute()
	c.items[idx] = item

	c.touchItems()
	c.recordEvent(&CartItemUpdatedEvent{
		CartID:      c.id,
		ProductID:   item.ProductID,
		VariationID: item.VariationID(),
		Quantity:    item.Quantity,
		UpdatedAt:   c.updatedAt,
	})
	return nil
}

// RemoveAt removes the line at index and returns it.
func (c *Cart) RemoveAt(index int) (CartItem, error) {
	if index < 0 || index >= len(c.items) {
		return CartItem{}, ErrInvalidIndex
	}
	removed := c.items[index]

	c.recordEvent(&CartItemRemovedEvent{
		CartID:      c.id,
		ProductID:   removed.ProductID,
		VariationID: removed.VariationID(),
		Name:        removed.Name,
		Quantity:    removed.Quantity,
		Price:       removed.EffectivePrice(),
		RemovedAt:   c.clock.Now(),
	})

	c.items = append(c.items[:index], c.items[index+1:]...)
	c.touchItems()
	return removed, nil
}

// Clear empties the cart and drops the applied coupon.
func (c *Cart) Clear() {
	count := len(c.items)
	c.items = make([]CartItem, 0)
	if c.coupon != nil {
		c.coupon = nil
		c.changes.MarkDirty(FieldCoupon)
	}
	c.touchItems()
	c.recordEvent(&CartClearedEvent{
		CartID:    c.id,
		ItemCount: count,
		ClearedAt: c.updatedAt,
	})
}

// ReplaceItems swaps in corrected lines after the shopper confirmed a
// reconciliation.
func (c *Cart) ReplaceItems(items []CartItem, changed, dropped int) {
	c.items = make([]CartItem, len(items))
	copy(c.items, items)
	for i := range c.items {
		c.items[i].Recompute()
	}
	c.touchItems()
	c.recordEvent(&CartReconciledEvent{
		CartID:       c.id,
		ChangedItems: changed,
		DroppedItems: dropped,
		ConfirmedAt:  c.updatedAt,
	})
}

// ApplyCoupon puts cp in the coupon slot, replacing any earlier coupon.
func (c *Cart) ApplyCoupon(cp coupon.Coupon) error {
	if c.IsEmpty() {
		return ErrCartEmpty
	}
	c.coupon = &cp
	c.changes.MarkDirty(FieldCoupon)
	c.updatedAt = c.clock.Now()
	c.recordEvent(&CouponAppliedEvent{
		CartID:         c.id,
		Code:           cp.Code,
		Source:         string(cp.Source),
		DiscountAmount: cp.DiscountAmount,
		AppliedAt:      c.updatedAt,
	})
	return nil
}

// RemoveCoupon empties the coupon slot.
func (c *Cart) RemoveCoupon() error {
	if c.coupon == nil {
		return ErrNoCouponApplied
	}
	code := c.coupon.Code
	c.coupon = nil
	c.changes.MarkDirty(FieldCoupon)
	c.updatedAt = c.clock.Now()
	c.recordEvent(&CouponRemovedEvent{
		CartID:    c.id,
		Code:      code,
		RemovedAt: c.updatedAt,
	})
	return nil
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of quantity * effective price, before any coupon.
func (c *Cart) TotalPrice() money.Money {
	total := money.Zero
	for _, it := range c.items {
		total = total.Add(it.EffectivePrice().MulInt(it.Quantity))
	}
	return total
}

// CouponDiscount is the applied coupon's amount, or zero.
func (c *Cart) CouponDiscount() money.Money {
	if c.coupon == nil {
		return money.Zero
	}
	return c.coupon.DiscountAmount
}

// Payable is the total after the coupon, never below zero.
func (c *Cart) Payable() money.Money {
	total := c.TotalPrice()
	return total.Sub(c.CouponDiscount().Min(total))
}

// MarkCommitted records a successful save.
func (c *Cart) MarkCommitted() {
	c.version++
	c.changes.Clear()
}

// ClearEvents drops recorded events after publishing.
func (c *Cart) ClearEvents() {
	c.events = make([]DomainEvent, 0)
}

func (c *Cart) indexOf(key string) int {
	for i := range c.items {
		if c.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// touchItems marks items dirty and keeps a percentage or capped coupon in
// line with the new total. A recomputed amount is provisional until the
// backend confirms it. A coupon the backend sent without a value keeps its
// amount, since there is nothing to recompute it from.
func (c *Cart) touchItems() {
	c.changes.MarkDirty(FieldItems)
	c.updatedAt = c.clock.Now()

	if c.coupon == nil || !c.coupon.DiscountValue.IsPositive() {
		return
	}
	recalculated := c.coupon.Recalculate(c.TotalPrice())
	if !recalculated.DiscountAmount.Equals(c.coupon.DiscountAmount) {
		recalculated.Provisional = true
		c.coupon = &recalculated
		c.changes.MarkDirty(FieldCoupon)
	}
}

func (c *Cart) recordEvent(event DomainEvent) {
	c.events = append(c.events, event)
}
