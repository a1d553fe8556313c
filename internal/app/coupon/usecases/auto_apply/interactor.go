package auto_apply

import (
	"context"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/coupon/contracts"
	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
)

type Request struct {
	CartID        string
	CustomerPhone string
}

// Interactor asks the backend for the best coupon and applies it. When the
// backend has nothing to offer the cart is returned unchanged.
type Interactor struct {
	coupons contracts.CouponService
	mutator *persist.Mutator
}

func NewInteractor(coupons contracts.CouponService, mutator *persist.Mutator) *Interactor {
	return &Interactor{
		coupons: coupons,
		mutator: mutator,
	}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*cart.View, error) {
	current, err := i.mutator.Store().Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		view := current.View()
		return &view, nil
	}

	best, err := i.coupons.AutoApply(ctx, domain.ValidationRequest{
		CustomerPhone: req.CustomerPhone,
		OrderTotal:    current.TotalPrice(),
		Products:      current.OrderLines(),
	})
	if err != nil {
		return nil, err
	}
	if best == nil {
		view := current.View()
		return &view, nil
	}

	cp := *best
	cp.Source = domain.SourceAuto
	cp.Provisional = false

	updated, err := i.mutator.Mutate(ctx, req.CartID, func(c *cart.Cart) error {
		return c.ApplyCoupon(cp)
	})
	if err != nil {
		return nil, err
	}

	view := updated.View()
	return &view, nil
}
