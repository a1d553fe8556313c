package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
)

// CouponService is the remote coupon authority.
type CouponService interface {
	// Validate asks whether a code applies to an order. A transport failure
	// is an error; a rejection is a result with Valid false.
	Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationResult, error)

	// MyCoupons lists the coupons pre-issued to a customer.
	MyCoupons(ctx context.Context, phone string) ([]domain.MyCoupon, error)

	// AutoApply returns the best coupon for an order, or nil when none applies.
	AutoApply(ctx context.Context, req domain.ValidationRequest) (*domain.Coupon, error)
}
