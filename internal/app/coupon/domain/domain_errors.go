package domain

import "errors"

// User-facing messages for validation failures.
const (
	MsgValidationFailed = "error validating coupon"
	MsgInvalidCode      = "invalid code"
)

var (
	ErrEmptyCode           = errors.New("coupon code cannot be empty")
	ErrUnknownDiscountType = errors.New("unknown coupon discount type")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrBelowMinimumOrder   = errors.New("order total is below the coupon minimum")
	ErrNoRemainingUses     = errors.New("coupon has no remaining uses")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrValidationFailed    = errors.New(MsgValidationFailed)
	ErrPhoneRequired       = errors.New("customer phone is required")
)

// InvalidCouponError is a rejection by the backend.
type InvalidCouponError struct {
	Reason string
}

func (e *InvalidCouponError) Error() string {
	if e.Reason == "" {
		return MsgInvalidCode
	}
	return e.Reason
}

// NewInvalidCouponError falls back to the generic message when the backend
// gave no reason.
func NewInvalidCouponError(reason string) *InvalidCouponError {
	return &InvalidCouponError{Reason: reason}
}
