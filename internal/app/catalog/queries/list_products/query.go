package list_products

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Request contains paging and filter options.
type Request struct {
	Page   int
	Limit  int
	Filter domain.Filter
}

// Result is one page of products with derived paging info.
type Result struct {
	Products      []domain.Product `json:"products"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int              `json:"totalProducts"`
}

// Query handles the list products query use case.
type Query struct {
	catalog      contracts.Catalog
	defaultLimit int
}

// NewQuery creates a new list products query.
func NewQuery(catalog contracts.Catalog, defaultLimit int) *Query {
	if defaultLimit <= 0 {
		defaultLimit = 12
	}
	return &Query{
		catalog:      catalog,
		defaultLimit: defaultLimit,
	}
}

// Execute lists products with filtering and pagination.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = q.defaultLimit
	}

	res, err := q.catalog.ListProducts(ctx, domain.ListQuery{Page: page, Limit: limit, Filter: req.Filter})
	if err != nil {
		return nil, err
	}

	return &Result{
		Products:      res.Products,
		Page:          page,
		TotalPages:    res.TotalPages(limit),
		TotalProducts: res.TotalProducts,
	}, nil
}
