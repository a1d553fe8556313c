package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// DiscountType says how a coupon's value is applied to an order.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// ParseDiscountType accepts the backend's spellings.
func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "flat", "amount":
		return DiscountFixed, nil
	case "percentage", "percent", "%":
		return DiscountPercentage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscountType, s)
	}
}

// Source records how a coupon reached the cart.
type Source string

const (
	SourceCode     Source = "code"
	SourceMyCoupon Source = "my_coupon"
	SourceAuto     Source = "auto"
)

// Coupon is a coupon ready to apply to an order.
type Coupon struct {
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountValue  money.Money  `json:"discountValue"`
	DiscountAmount money.Money  `json:"discountAmount"`
	UsageLimit     int          `json:"usageLimit,omitempty"`
	ValidUntil     *time.Time   `json:"validUntil,omitempty"`
	Source         Source       `json:"source"`
	// Provisional is set when the amount was computed locally; the backend
	// must confirm it before an order is placed.
	Provisional bool `json:"provisional"`
}

// ComputeDiscount returns the discount for an order total. Percentages are
// taken from the total; fixed amounts are capped at it.
func ComputeDiscount(t DiscountType, value, orderTotal money.Money) money.Money {
	if !orderTotal.IsPositive() || !value.IsPositive() {
		return money.Zero
	}
	if t == DiscountPercentage {
		return orderTotal.Percent(value)
	}
	return value.Min(orderTotal)
}

// Recalculate returns a copy with the amount recomputed for a new total.
func (c Coupon) Recalculate(orderTotal money.Money) Coupon {
	c.DiscountAmount = ComputeDiscount(c.DiscountType, c.DiscountValue, orderTotal)
	return c
}

// NormalizeCode trims and uppercases a typed code.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrEmptyCode
	}
	return code, nil
}
