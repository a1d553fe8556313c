package get_product

import (
	"context"
	"strings"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID string
}

// Query handles the get product query use case.
type Query struct {
	catalog contracts.Catalog
}

// NewQuery creates a new get product query.
func NewQuery(catalog contracts.Catalog) *Query {
	return &Query{
		catalog: catalog,
	}
}

// Execute retrieves a product by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		return nil, domain.ErrProductNotFound
	}
	return q.catalog.GetProduct(ctx, id)
}
