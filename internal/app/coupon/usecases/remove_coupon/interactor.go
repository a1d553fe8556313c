package remove_coupon

import (
	"context"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
)

type Request struct {
	CartID string
}

// Interactor empties the cart's coupon slot.
type Interactor struct {
	mutator *persist.Mutator
}

func NewInteractor(mutator *persist.Mutator) *Interactor {
	return &Interactor{mutator: mutator}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*cart.View, error) {
	updated, err := i.mutator.Mutate(ctx, req.CartID, func(c *cart.Cart) error {
		return c.RemoveCoupon()
	})
	if err != nil {
		return nil, err
	}
	view := updated.View()
	return &view, nil
}
