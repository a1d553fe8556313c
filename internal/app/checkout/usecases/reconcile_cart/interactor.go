package reconcile_cart

import (
	"context"

	cartcontracts "github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/reconciler"
)

type Request struct {
	CartID string
}

// Result is the drift report next to the cart it was computed for. The cart
// is returned as stored; nothing changes until the shopper confirms.
type Result struct {
	cart.ReconcileResult
	Cart cart.View `json:"cart"`
}

// Interactor handles the checkout reconciliation use case.
type Interactor struct {
	store      cartcontracts.CartStore
	reconciler *reconciler.Reconciler
}

func NewInteractor(store cartcontracts.CartStore, r *reconciler.Reconciler) *Interactor {
	return &Interactor{
		store:      store,
		reconciler: r,
	}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	c, err := i.store.Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}

	res, err := i.reconciler.Reconcile(ctx, c)
	if err != nil {
		return nil, err
	}
	return &Result{ReconcileResult: res, Cart: c.View()}, nil
}
