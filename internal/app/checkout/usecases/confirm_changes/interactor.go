package confirm_changes

import (
	"context"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/checkout/reconciler"
)

type Request struct {
	CartID string
}

type Result struct {
	cart.ReconcileResult
	Cart cart.View `json:"cart"`
}

// Interactor replaces the cart with its corrected lines once the shopper has
// seen the changes. Reconciliation runs again so the cart reflects current
// data rather than what was shown earlier.
type Interactor struct {
	mutator    *persist.Mutator
	reconciler *reconciler.Reconciler
}

func NewInteractor(mutator *persist.Mutator, r *reconciler.Reconciler) *Interactor {
	return &Interactor{
		mutator:    mutator,
		reconciler: r,
	}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	var res cart.ReconcileResult
	updated, err := i.mutator.Mutate(ctx, req.CartID, func(c *cart.Cart) error {
		if c.IsEmpty() {
			return cart.ErrCartEmpty
		}
		var err error
		res, err = i.reconciler.Reconcile(ctx, c)
		if err != nil {
			return err
		}
		if res.HasChanges {
			c.ReplaceItems(res.UpdatedCart, len(res.Changes), res.Dropped())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{ReconcileResult: res, Cart: updated.View()}, nil
}
