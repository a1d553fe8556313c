package get_cart

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// Request contains the cart ID to retrieve.
type Request struct {
	CartID string
}

// Query handles the get cart query use case.
type Query struct {
	store contracts.CartStore
}

// NewQuery creates a new get cart query.
func NewQuery(store contracts.CartStore) *Query {
	return &Query{store: store}
}

// Execute returns the cart with totals. An unknown id yields an empty cart.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.View, error) {
	cart, err := q.store.Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	view := cart.View()
	return &view, nil
}
