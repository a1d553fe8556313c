// Package coupontest provides an in-memory coupon service for tests.
package coupontest

import (
	"context"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
)

// Fake answers coupon calls from canned data and records requests.
type Fake struct {
	mu sync.Mutex

	// Codes maps an upper-case code to the coupon the backend accepts.
	Codes map[string]domain.Coupon
	// Reasons maps a rejected code to the backend's reason.
	Reasons map[string]string
	// Issued maps a phone number to its pre-issued coupons.
	Issued map[string][]domain.MyCoupon
	// Auto is returned by AutoApply.
	Auto *domain.Coupon
	// Err fails every call when set.
	Err error

	ValidateCalls []domain.ValidationRequest
	AutoCalls     int
}

func NewFake() *Fake {
	return &Fake{
		Codes:   make(map[string]domain.Coupon),
		Reasons: make(map[string]string),
		Issued:  make(map[string][]domain.MyCoupon),
	}
}

func (f *Fake) Validate(_ context.Context, req domain.ValidationRequest) (*domain.ValidationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ValidateCalls = append(f.ValidateCalls, req)
	if f.Err != nil {
		return nil, f.Err
	}

	cp, ok := f.Codes[req.Code]
	if !ok {
		return &domain.ValidationResult{Valid: false, Reason: f.Reasons[req.Code]}, nil
	}
	cp = cp.Recalculate(req.OrderTotal)
	return &domain.ValidationResult{Valid: true, Coupon: &cp}, nil
}

func (f *Fake) MyCoupons(_ context.Context, phone string) ([]domain.MyCoupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]domain.MyCoupon, len(f.Issued[phone]))
	copy(out, f.Issued[phone])
	return out, nil
}

func (f *Fake) AutoApply(_ context.Context, req domain.ValidationRequest) (*domain.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AutoCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Auto == nil {
		return nil, nil
	}
	cp := f.Auto.Recalculate(req.OrderTotal)
	return &cp, nil
}
