package search_products

import (
	"context"
	"strings"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// MinQueryLength is the shortest search term sent to the backend.
const MinQueryLength = 2

type Request struct {
	Query string
}

type Query struct {
	catalog contracts.Catalog
}

func NewQuery(catalog contracts.Catalog) *Query {
	return &Query{catalog: catalog}
}

// Execute searches products. Terms shorter than MinQueryLength return no
// results without a backend call.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.Product, error) {
	term := strings.TrimSpace(req.Query)
	if len([]rune(term)) < MinQueryLength {
		return []domain.Product{}, nil
	}
	return q.catalog.Search(ctx, term)
}
