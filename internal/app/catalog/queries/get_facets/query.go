package get_facets

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Request selects the category context for facet values.
type Request struct {
	CategoryID string
}

// Query returns the filter values available for a category.
type Query struct {
	catalog contracts.Catalog
}

func NewQuery(catalog contracts.Catalog) *Query {
	return &Query{catalog: catalog}
}

func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Facets, error) {
	return q.catalog.FilterData(ctx, req.CategoryID)
}
