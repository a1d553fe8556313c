package select_coupon

import (
	"context"
	"strings"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/coupon/contracts"
	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request picks one of the shopper's pre-issued coupons by id or code.
type Request struct {
	CartID        string
	CustomerPhone string
	CouponID      string
	Code          string
}

// Interactor applies a pre-issued coupon after checking it locally.
type Interactor struct {
	coupons contracts.CouponService
	mutator *persist.Mutator
	clock   clock.Clock
}

func NewInteractor(coupons contracts.CouponService, mutator *persist.Mutator, clk clock.Clock) *Interactor {
	return &Interactor{
		coupons: coupons,
		mutator: mutator,
		clock:   clk,
	}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*cart.View, error) {
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, domain.ErrPhoneRequired
	}

	issued, err := i.coupons.MyCoupons(ctx, req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	chosen, err := find(issued, req.CouponID, req.Code)
	if err != nil {
		return nil, err
	}

	updated, err := i.mutator.Mutate(ctx, req.CartID, func(c *cart.Cart) error {
		if c.IsEmpty() {
			return cart.ErrCartEmpty
		}
		cp, err := chosen.Select(c.TotalPrice(), i.clock.Now())
		if err != nil {
			return err
		}
		return c.ApplyCoupon(*cp)
	})
	if err != nil {
		return nil, err
	}

	view := updated.View()
	return &view, nil
}

func find(issued []domain.MyCoupon, id, code string) (*domain.MyCoupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for idx := range issued {
		m := &issued[idx]
		if id != "" && m.ID == id {
			return m, nil
		}
		if code != "" && strings.EqualFold(m.Code, code) {
			return m, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}
