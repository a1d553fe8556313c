package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Catalog is the read side of the remote commerce API.
// Implementations return domain.ErrProductNotFound for unknown ids.
type Catalog interface {
	// ListProducts fetches one page of a filtered listing
	ListProducts(ctx context.Context, q domain.ListQuery) (*domain.Page, error)

	// FilterData fetches facet values for a category ("" for all)
	FilterData(ctx context.Context, categoryID string) (*domain.Facets, error)

	// GetProduct fetches a single product with its variations
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// Search runs a free-text product search
	Search(ctx context.Context, query string) ([]domain.Product, error)
}
