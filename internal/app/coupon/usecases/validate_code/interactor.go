package validate_code

import (
	"context"
	"fmt"
	"log/slog"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/coupon/contracts"
	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
)

// Request carries a code typed by the shopper.
type Request struct {
	CartID        string
	Code          string
	CustomerPhone string
}

// Interactor validates a code with the backend and applies it to the cart.
type Interactor struct {
	coupons contracts.CouponService
	mutator *persist.Mutator
	logger  *slog.Logger
}

func NewInteractor(coupons contracts.CouponService, mutator *persist.Mutator, logger *slog.Logger) *Interactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		coupons: coupons,
		mutator: mutator,
		logger:  logger,
	}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*cart.View, error) {
	code, err := domain.NormalizeCode(req.Code)
	if err != nil {
		return nil, err
	}

	current, err := i.mutator.Store().Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}

	result, err := i.coupons.Validate(ctx, domain.ValidationRequest{
		Code:          code,
		CustomerPhone: req.CustomerPhone,
		OrderTotal:    current.TotalPrice(),
		Products:      current.OrderLines(),
	})
	if err != nil {
		i.logger.Warn("coupon validation failed", "code", code, "cart_id", req.CartID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	if !result.Valid || result.Coupon == nil {
		return nil, domain.NewInvalidCouponError(result.Reason)
	}

	cp := *result.Coupon
	cp.Code = code
	cp.Source = domain.SourceCode
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
