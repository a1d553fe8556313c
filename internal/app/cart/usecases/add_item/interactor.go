package add_item

import (
	"context"

	catalogcontracts "github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
)

// Request contains the product selection to add.
type Request struct {
	CartID      string
	ProductID   string
	VariationID string
	Quantity    int
}

// Interactor handles the add to cart use case.
type Interactor struct {
	catalog catalogcontracts.Catalog
	mutator *persist.Mutator
}

// NewInteractor creates a new add item interactor.
func NewInteractor(catalog catalogcontracts.Catalog, mutator *persist.Mutator) *Interactor {
	return &Interactor{
		catalog: catalog,
		mutator: mutator,
	}
}

// Execute prices the selection from the catalog and merges it into the cart.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.View, error) {
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// 1. Current product data
	product, err := i.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. Build the line
	item, err := domain.NewCartItem(product, req.VariationID, req.Quantity)
	if err != nil {
		return nil, err
	}

	// 3. Merge and save
	cart, err := i.mutator.Mutate(ctx, req.CartID, func(cart *domain.Cart) error {
		return cart.Add(item)
	})
	if err != nil {
		return nil, err
	}

	view := cart.View()
	return &view, nil
}
