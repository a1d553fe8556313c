package remove_item

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
)

// Request names the line to remove by position.
type Request struct {
	CartID string
	Index  int
}

// Interactor handles the remove from cart use case.
type Interactor struct {
	mutator *persist.Mutator
}

func NewInteractor(mutator *persist.Mutator) *Interactor {
	return &Interactor{mutator: mutator}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.View, error) {
	cart, err := i.mutator.Mutate(ctx, req.CartID, func(cart *domain.Cart) error {
		_, err := cart.RemoveAt(req.Index)
		return err
	})
	if err != nil {
		return nil, err
	}

	view := cart.View()
	return &view, nil
}
