package domain

import (
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Variation is the selected size/color/SKU of a cart line.
type Variation = catalog.Variation

// CartItem is one line of a cart.
//
// TotalPrice equals Quantity * EffectivePrice() for every item the cart
// holds; reconciliation is what restores it after backend prices drift.
type CartItem struct {
	ProductID     string       `json:"productId"`
	SKU           string       `json:"sku,omitempty"`
	Name          string       `json:"name"`
	Active        bool         `json:"active"`
	Quantity      int          `json:"quantity"`
	UnitPrice     money.Money  `json:"unitPrice"`
	UpdatedPrice  *money.Money `json:"updatedPrice,omitempty"`
	Discount      money.Money  `json:"discount"`
	HasDiscount   bool         `json:"hasDiscount"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	ProductCode   string       `json:"productCode,omitempty"`
	TotalPrice    money.Money  `json:"totalPrice"`
	CategoryID    string       `json:"categoryId,omitempty"`
	CategoryName  string       `json:"categoryName,omitempty"`
	HasVariations bool         `json:"hasVariations"`
	Variation     *Variation   `json:"variation,omitempty"`
	MaxQuantity   int          `json:"maxQuantity"`
}

// ItemKey is the identity of a line: the product id, plus the variation id
// when the product has variations.
func ItemKey(productID, variationID string) string {
	if variationID == "" {
		return productID
	}
	return productID + ":" + variationID
}

// VariationID returns the selected variation id or "".
func (i *CartItem) VariationID() string {
	if !i.HasVariations || i.Variation == nil {
		return ""
	}
	return i.Variation.ID
}

// Key returns the line identity.
func (i *CartItem) Key() string {
	return ItemKey(i.ProductID, i.VariationID())
}

// EffectivePrice is the discounted price when present, else the unit price.
func (i *CartItem) EffectivePrice() money.Money {
	if i.UpdatedPrice != nil {
		return *i.UpdatedPrice
	}
	return i.UnitPrice
}

// UnitDiscount is unitPrice - discountedPrice, or 0 without a discount.
func (i *CartItem) UnitDiscount() money.Money {
	if i.UpdatedPrice == nil {
		return money.Zero
	}
	return i.UnitPrice.Sub(*i.UpdatedPrice)
}

// Recompute refreshes the derived totals from price and quantity.
func (i *CartItem) Recompute() {
	unitDiscount := i.UnitDiscount()
	i.TotalPrice = i.EffectivePrice().MulInt(i.Quantity)
	i.Discount = unitDiscount.MulInt(i.Quantity)
	i.HasDiscount = unitDiscount.IsPositive()
}

func (i *CartItem) validate() error {
	if i.ProductID == "" {
		return ErrInvalidItem
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.HasVariations && i.Variation == nil {
		return ErrVariationRequired
	}
	if i.MaxQuantity > 0 && i.Quantity > i.MaxQuantity {
		return ErrQuantityExceedsStock
	}
	return nil
}

// PriceQuote is what the backend currently says about one product line.
type PriceQuote struct {
	UnitPrice       money.Money
	DiscountedPrice *money.Money
	Available       int
	Active          bool
}

// QuoteFor resolves prices and stock for a product and optional variation.
// A variation's own price replaces the product price and the product's
// discount is applied to it. ok is false when the variation does not exist.
func QuoteFor(p *catalog.Product, variationID string) (PriceQuote, bool) {
	q := PriceQuote{
		UnitPrice: p.UnitPrice,
		Available: p.AvailableQuantity,
		Active:    p.Active,
	}
	if p.DiscountedPrice != nil {
		d := *p.DiscountedPrice
		q.DiscountedPrice = &d
	}
	if variationID == "" {
		return q, true
	}

	v, ok := p.Variation(variationID)
	if !ok {
		return PriceQuote{}, false
	}
	q.Available = v.AvailableQuantity
	if v.Price.IsPositive() && !v.Price.Equals(p.UnitPrice) {
		q.UnitPrice = v.Price
		q.DiscountedPrice = catalog.NormalizeDiscountedPrice(v.Price, nil, p.Discount)
	}
	return q, true
}

// NewCartItem builds a line for quantity units of a product.
func NewCartItem(p *catalog.Product, variationID string, quantity int) (CartItem, error) {
	if p.HasVariations() && variationID == "" {
		return CartItem{}, ErrVariationRequired
	}

	quote, ok := QuoteFor(p, variationID)
	if !ok {
		return CartItem{}, ErrVariationNotFound
	}
	if !quote.Active || quote.Available <= 0 {
		return CartItem{}, ErrOutOfStock
	}

	item := CartItem{
		ProductID:     p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Active:        p.Active,
		Quantity:      quantity,
		UnitPrice:     quote.UnitPrice,
		UpdatedPrice:  quote.DiscountedPrice,
		Thumbnail:     p.Thumbnail,
		ProductCode:   p.ProductCode,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		HasVariations: p.HasVariations(),
		MaxQuantity:   quote.Available,
	}
	if variationID != "" {
		v, _ := p.Variation(variationID)
		item.Variation = &v
		if v.SKU != "" {
			item.SKU = v.SKU
		}
	}
	item.Recompute()

	if err := item.validate(); err != nil {
		return CartItem{}, err
	}
	return item, nil
}
