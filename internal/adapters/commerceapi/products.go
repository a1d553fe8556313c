package commerceapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/light-bringer/storefront-service/internal/adapters/commerceapi/dto"
	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

var _ contracts.Catalog = (*Client)(nil)

func (c *Client) ListProducts(ctx context.Context, q catalog.ListQuery) (*catalog.Page, error) {
	var resp dto.ProductListResponse
	if err := c.getJSON(ctx, "/product/all", q.Values(), &resp); err != nil {
		return nil, err
	}
	page, skipped := resp.ToDomain()
	if skipped > 0 {
		c.logger.Warn("skipped malformed products", "count", skipped, "page", q.Page)
	}
	return page, nil
}

func (c *Client) FilterData(ctx context.Context, categoryID string) (*catalog.Facets, error) {
	query := url.Values{}
	if categoryID != "" {
		query.Set("categoryId", categoryID)
	}
	var resp dto.FilterDataResponse
	if err := c.getJSON(ctx, "/product/filterData", query, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// GetProduct maps a 404 or an empty body to ErrProductNotFound.
func (c *Client) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, catalog.ErrProductNotFound
	}

	var resp dto.SingleProductResponse
	if err := c.getJSON(ctx, "/product/by/"+url.PathEscape(productID), nil, &resp); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
		}
		return nil, err
	}
	if resp.Product == nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	product, err := resp.Product.ToDomain()
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	var resp []dto.ProductDto
	if err := c.getJSON(ctx, "/product/search", url.Values{"query": {query}}, &resp); err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(resp))
	for _, p := range resp {
		product, err := p.ToDomain()
		if err != nil {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}
