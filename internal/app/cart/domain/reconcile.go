package domain

import (
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// PriceDelta is an old/new pair with Difference = New - Old.
type PriceDelta struct {
	Old        money.Money `json:"old"`
	New        money.Money `json:"new"`
	Difference money.Money `json:"difference"`
}

func newPriceDelta(oldV, newV money.Money) *PriceDelta {
	return &PriceDelta{Old: oldV, New: newV, Difference: newV.Sub(oldV)}
}

// QuantityDelta reports a desired quantity capped to availability.
type QuantityDelta struct {
	Old       int `json:"old"`
	New       int `json:"new"`
	Available int `json:"available"`
}

// ProductChange describes the drift found for one cart line. Only the
// fields that differ are set.
type ProductChange struct {
	ProductID              string         `json:"productId"`
	VariationID            string         `json:"variationId,omitempty"`
	Name                   string         `json:"name"`
	PriceChanged           *PriceDelta    `json:"priceChanged,omitempty"`
	DiscountChanged        *PriceDelta    `json:"discountChanged,omitempty"`
	DiscountedPriceChanged *PriceDelta    `json:"discountedPriceChanged,omitempty"`
	QuantityChanged        *QuantityDelta `json:"quantityChanged,omitempty"`
	ProductRemoved         bool           `json:"productRemoved,omitempty"`
	ProductInactive        bool           `json:"productInactive,omitempty"`
}

func (c *ProductChange) differs() bool {
	return c.PriceChanged != nil || c.DiscountChanged != nil ||
		c.DiscountedPriceChanged != nil || c.QuantityChanged != nil
}

// ReconcileResult is the outcome of one reconciliation pass.
type ReconcileResult struct {
	HasChanges  bool            `json:"hasChanges"`
	Changes     []ProductChange `json:"changes"`
	UpdatedCart []CartItem      `json:"updatedCart"`
}

// Dropped counts lines that did not survive.
func (r *ReconcileResult) Dropped() int {
	n := 0
	for _, c := range r.Changes {
		if c.ProductRemoved || c.ProductInactive {
			n++
		}
	}
	return n
}

// Reconcile diffs cart lines against fresh product records keyed by product
// id. It is pure: neither argument is modified.
//
// A missing product, or a variation the product no longer has, drops the
// line as removed. Zero availability or an inactive product drops it as
// inactive. Surviving lines are always re-emitted with refreshed prices and
// quantity capped to availability.
func Reconcile(items []CartItem, products map[string]catalog.Product) ReconcileResult {
	res := ReconcileResult{
		Changes:     make([]ProductChange, 0),
		UpdatedCart: make([]CartItem, 0, len(items)),
	}

	for _, item := range items {
		change := ProductChange{
			ProductID:   item.ProductID,
			VariationID: item.VariationID(),
			Name:        item.Name,
		}

		p, ok := products[item.ProductID]
		if !ok {
			change.ProductRemoved = true
			res.Changes = append(res.Changes, change)
			continue
		}
		quote, ok := QuoteFor(&p, item.VariationID())
		if !ok {
			change.ProductRemoved = true
			res.Changes = append(res.Changes, change)
			continue
		}
		if quote.Available <= 0 || !quote.Active {
			change.ProductInactive = true
			res.Changes = append(res.Changes, change)
			continue
		}

		fresh := item
		fresh.UnitPrice = quote.UnitPrice
		fresh.UpdatedPrice = quote.DiscountedPrice
		fresh.Active = true
		fresh.MaxQuantity = quote.Available
		if v, ok := p.Variation(item.VariationID()); ok {
			fresh.Variation = &v
		}

		if !item.UnitPrice.Equals(fresh.UnitPrice) {
			change.PriceChanged = newPriceDelta(item.UnitPrice, fresh.UnitPrice)
		}
		if oldD, newD := item.UnitDiscount(), fresh.UnitDiscount(); !oldD.Equals(newD) {
			change.DiscountChanged = newPriceDelta(oldD, newD)
		}
		if oldP, newP := item.EffectivePrice(), fresh.EffectivePrice(); !oldP.Equals(newP) {
			change.DiscountedPriceChanged = newPriceDelta(oldP, newP)
		}
		if item.Quantity > quote.Available {
			change.QuantityChanged = &QuantityDelta{
				Old:       item.Quantity,
				New:       quote.Available,
				Available: quote.Available,
			}
			fresh.Quantity = quote.Available
		}

		if change.differs() {
			res.Changes = append(res.Changes, change)
		}

		fresh.Recompute()
		res.UpdatedCart = append(res.UpdatedCart, fresh)
	}

	res.HasChanges = len(res.Changes) > 0
	return res
}
