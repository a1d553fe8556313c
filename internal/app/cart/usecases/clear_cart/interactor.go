package clear_cart

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
)

type Request struct {
	CartID string
}

// Interactor empties a cart and drops its coupon.
type Interactor struct {
	mutator *persist.Mutator
}

func NewInteractor(mutator *persist.Mutator) *Interactor {
	return &Interactor{mutator: mutator}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.View, error) {
	cart, err := i.mutator.Mutate(ctx, req.CartID, func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := cart.View()
	return &view, nil
}
