package dto

import (
	"strings"
	"time"

	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

type CouponProductDto struct {
	ProductID    string      `json:"productId"`
	VariationID  string      `json:"variationId,omitempty"`
	CategoryName string      `json:"categoryName,omitempty"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
}

type CouponRequest struct {
	CouponCode    string             `json:"couponCode,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	OrderTotal    money.Money        `json:"orderTotal"`
	Products      []CouponProductDto `json:"products"`
}

// NewCouponRequest builds the body shared by validate and auto-apply.
func NewCouponRequest(req coupon.ValidationRequest) CouponRequest {
	body := CouponRequest{
		CouponCode:    req.Code,
		CustomerPhone: req.CustomerPhone,
		OrderTotal:    req.OrderTotal,
		Products:      make([]CouponProductDto, 0, len(req.Products)),
	}
	for _, l := range req.Products {
		body.Products = append(body.Products, CouponProductDto(l))
	}
	return body
}

type CouponDto struct {
	Code           string       `json:"code"`
	DiscountType   string       `json:"discountType"`
	DiscountValue  *money.Money `json:"discountValue"`
	DiscountAmount *money.Money `json:"discountAmount"`
	UsageLimit     int          `json:"usageLimit"`
	ValidUntil     *time.Time   `json:"validUntil"`
}

// ToDomain validates a coupon. The backend's amount is used when present,
// otherwise it is computed for orderTotal.
func (c CouponDto) ToDomain(orderTotal money.Money) (coupon.Coupon, error) {
	code, err := coupon.NormalizeCode(c.Code)
	if err != nil {
		return coupon.Coupon{}, err
	}
	dtype, err := coupon.ParseDiscountType(c.DiscountType)
	if err != nil {
		return coupon.Coupon{}, err
	}
	value := money.Zero
	if c.DiscountValue != nil {
		value = *c.DiscountValue
	}

	cp := coupon.Coupon{
		Code:          code,
		DiscountType:  dtype,
		DiscountValue: value,
		UsageLimit:    c.UsageLimit,
		ValidUntil:    c.ValidUntil,
	}
	if c.DiscountAmount != nil && !c.DiscountAmount.IsNegative() {
		cp.DiscountAmount = *c.DiscountAmount
	} else {
		cp.DiscountAmount = coupon.ComputeDiscount(dtype, value, orderTotal)
	}
	return cp, nil
}

type ValidateData struct {
	Valid  bool       `json:"valid"`
	Coupon *CouponDto `json:"coupon"`
	Error  string     `json:"error"`
}

type ValidateResponse struct {
	Success bool          `json:"success"`
	Data    *ValidateData `json:"data"`
	Message string        `json:"message"`
}

// ToDomain turns the response into a verdict. A valid verdict whose coupon
// cannot be parsed is treated as invalid.
func (r ValidateResponse) ToDomain(orderTotal money.Money) coupon.ValidationResult {
	if r.Data == nil {
		return coupon.ValidationResult{Valid: false, Reason: r.Message}
	}
	if !r.Data.Valid || r.Data.Coupon == nil {
		return coupon.ValidationResult{Valid: false, Reason: strings.TrimSpace(r.Data.Error)}
	}
	cp, err := r.Data.Coupon.ToDomain(orderTotal)
	if err != nil {
		return coupon.ValidationResult{Valid: false}
	}
	return coupon.ValidationResult{Valid: true, Coupon: &cp}
}

type MyCouponDto struct {
	ID                 string       `json:"_id"`
	Code               string       `json:"code"`
	Description        string       `json:"description"`
	DiscountType       string       `json:"discountType"`
	DiscountValue      *money.Money `json:"discountValue"`
	MinOrderAmount     *money.Money `json:"minOrderAmount"`
	MaxUses            int          `json:"maxUses"`
	RemainingUses      int          `json:"remainingUses"`
	ValidUntil         *time.Time   `json:"validUntil"`
	EligibleCategories []string     `json:"eligibleCategories"`
}

// ToDomain validates a pre-issued coupon. One without an expiry is rejected
// so it can never be selected by accident.
func (m MyCouponDto) ToDomain() (coupon.MyCoupon, bool) {
	code, err := coupon.NormalizeCode(m.Code)
	if err != nil || m.ValidUntil == nil || m.DiscountValue == nil {
		return coupon.MyCoupon{}, false
	}
	dtype, err := coupon.ParseDiscountType(m.DiscountType)
	if err != nil {
		return coupon.MyCoupon{}, false
	}
	minOrder := money.Zero
	if m.MinOrderAmount != nil {
		minOrder = *m.MinOrderAmount
	}
	return coupon.MyCoupon{
		ID:                 m.ID,
		Code:               code,
		Description:        m.Description,
		DiscountType:       dtype,
		DiscountValue:      *m.DiscountValue,
		MinOrderAmount:     minOrder,
		MaxUses:            m.MaxUses,
		RemainingUses:      m.RemainingUses,
		ValidUntil:         *m.ValidUntil,
		EligibleCategories: m.EligibleCategories,
	}, true
}

type MyCouponsResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []MyCouponDto `json:"data"`
}

type AutoApplyResponse struct {
	Success bool       `json:"success"`
	Data    *CouponDto `json:"data"`
}
