package domain

import (
	"fmt"
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// DiscountType says how a discount value is interpreted.
type DiscountType string

const (
	DiscountNone       DiscountType = ""
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// ParseDiscountType normalises the backend's spelling of a discount type.
func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DiscountNone, nil
	case "fixed", "flat", "amount":
		return DiscountFixed, nil
	case "percentage", "percent", "%":
		return DiscountPercentage, nil
	default:
		return DiscountNone, fmt.Errorf("%w: %q", ErrUnknownDiscountType, s)
	}
}

// Discount is the product-level discount as published by the backend.
// Value is an absolute amount for fixed discounts and 0-100 for percentages.
type Discount struct {
	Type  DiscountType `json:"type,omitempty"`
	Value money.Money  `json:"value"`
}

// Apply returns the discounted unit price, or nil when the discount does not
// lower the price. The result never drops below zero.
func (d Discount) Apply(unitPrice money.Money) *money.Money {
	var off money.Money
	switch d.Type {
	case DiscountFixed:
		off = d.Value
	case DiscountPercentage:
		off = unitPrice.Percent(d.Value)
	default:
		return nil
	}
	if !off.IsPositive() {
		return nil
	}
	price := unitPrice.Sub(off.Min(unitPrice))
	return &price
}

// Validate checks the value range for the discount type.
func (d Discount) Validate() error {
	if d.Value.IsNegative() {
		return ErrInvalidDiscount
	}
	if d.Type == DiscountPercentage && d.Value.GreaterThan(money.FromInt(100)) {
		return ErrInvalidDiscount
	}
	return nil
}

// NormalizeDiscountedPrice settles a product's discounted price. An explicit
// discounted price wins; otherwise it is derived from the discount. A price
// that is not below the unit price means no discount.
func NormalizeDiscountedPrice(unitPrice money.Money, explicit *money.Money, d Discount) *money.Money {
	price := explicit
	if price == nil {
		price = d.Apply(unitPrice)
	}
	if price == nil || price.IsNegative() || !price.LessThan(unitPrice) {
		return nil
	}
	p := *price
	return &p
}

// DiscountPercent recomputes the percentage from the two absolute prices. The
// stored percentage is not trusted because the backend may have switched the
// discount type.
func DiscountPercent(unitPrice, discountedPrice money.Money) money.Money {
	if !unitPrice.IsPositive() {
		return money.Zero
	}
	off := unitPrice.Sub(discountedPrice)
	return off.Mul(money.FromInt(100)).Div(unitPrice)
}
