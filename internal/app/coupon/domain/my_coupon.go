package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// MyCoupon is a coupon pre-issued to one customer.
type MyCoupon struct {
	ID                 string       `json:"id"`
	Code               string       `json:"code"`
	Description        string       `json:"description,omitempty"`
	DiscountType       DiscountType `json:"discountType"`
	DiscountValue      money.Money  `json:"discountValue"`
	MinOrderAmount     money.Money  `json:"minOrderAmount"`
	MaxUses            int          `json:"maxUses"`
	RemainingUses      int          `json:"remainingUses"`
	ValidUntil         time.Time    `json:"validUntil"`
	EligibleCategories []string     `json:"eligibleCategories,omitempty"`
}

// Check gates selection locally. Expiry is checked first so an expired
// coupon is rejected whatever its remaining uses.
func (m *MyCoupon) Check(orderTotal money.Money, now time.Time) error {
	if m.ValidUntil.Before(now) {
		return ErrCouponExpired
	}
	if orderTotal.LessThan(m.MinOrderAmount) {
		return ErrBelowMinimumOrder
	}
	if m.RemainingUses <= 0 {
		return ErrNoRemainingUses
	}
	return nil
}

// Select validates the coupon for an order and computes a provisional
// discount.
func (m *MyCoupon) Select(orderTotal money.Money, now time.Time) (*Coupon, error) {
	if err := m.Check(orderTotal, now); err != nil {
		return nil, err
	}

	validUntil := m.ValidUntil
	return &Coupon{
		Code:           m.Code,
		DiscountType:   m.DiscountType,
		DiscountValue:  m.DiscountValue,
		DiscountAmount: ComputeDiscount(m.DiscountType, m.DiscountValue, orderTotal),
		UsageLimit:     m.MaxUses,
		ValidUntil:     &validUntil,
		Source:         SourceMyCoupon,
		Provisional:    true,
	}, nil
}
