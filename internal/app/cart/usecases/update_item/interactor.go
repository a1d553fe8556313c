package update_item

import (
	"context"

	catalogcontracts "github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
)

// Request identifies a line by product and variation and gives its new
// quantity. NewVariationID switches the selected variation.
type Request struct {
	CartID         string
	ProductID      string
	VariationID    string
	NewVariationID string
	Quantity       int
}

// Interactor handles the update cart line use case.
type Interactor struct {
	catalog catalogcontracts.Catalog
	mutator *persist.Mutator
}

func NewInteractor(catalog catalogcontracts.Catalog, mutator *persist.Mutator) *Interactor {
	return &Interactor{
		catalog: catalog,
		mutator: mutator,
	}
}

// Execute replaces the matching line with a freshly priced one.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.View, error) {
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := i.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// Lines of a product without variations are keyed by product alone,
	// whatever variation the client echoes back.
	oldVariationID, variationID := req.VariationID, req.VariationID
	if req.NewVariationID != "" {
		variationID = req.NewVariationID
	}
	if !product.HasVariations() {
		oldVariationID, variationID = "", ""
	}

	item, err := domain.NewCartItem(product, variationID, req.Quantity)
	if err != nil {
		return nil, err
	}

	oldKey := domain.ItemKey(req.ProductID, oldVariationID)
	cart, err := i.mutator.Mutate(ctx, req.CartID, func(cart *domain.Cart) error {
		if oldKey == item.Key() {
			return cart.Update(item)
		}
		return swapVariation(cart, oldKey, item)
	})
	if err != nil {
		return nil, err
	}

	view := cart.View()
	return &view, nil
}

// swapVariation removes the old line and adds the new selection, merging
// with an existing line for that variation.
func swapVariation(cart *domain.Cart, oldKey string, item domain.CartItem) error {
	for idx, it := range cart.Items() {
		if it.Key() != oldKey {
			continue
		}
		if _, err := cart.RemoveAt(idx); err != nil {
			return err
		}
		return cart.Add(item)
	}
	return domain.ErrItemNotFound
}
