package domain

import (
	"net/url"
	"strconv"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Product is the backend's current view of a product, validated at the API edge.
type Product struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	SKU               string       `json:"sku,omitempty"`
	ProductCode       string       `json:"productCode,omitempty"`
	Thumbnail         string       `json:"thumbnail,omitempty"`
	Images            []string     `json:"images,omitempty"`
	CategoryID        string       `json:"categoryId,omitempty"`
	CategoryName      string       `json:"categoryName,omitempty"`
	UnitPrice         money.Money  `json:"unitPrice"`
	Discount          Discount     `json:"discount"`
	DiscountedPrice   *money.Money `json:"discountedPrice,omitempty"` // nil when no discount applies
	AvailableQuantity int          `json:"availableQuantity"`
	Active            bool         `json:"active"`
	Variations        []Variation  `json:"variations,omitempty"`
}

// HasVariations reports whether the product is sold per size/color variation.
func (p *Product) HasVariations() bool {
	return len(p.Variations) > 0
}

// EffectivePrice returns the discounted price when present, else the unit price.
func (p *Product) EffectivePrice() money.Money {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.UnitPrice
}

// DiscountAmount is the absolute per-unit discount derived from the two prices.
func (p *Product) DiscountAmount() money.Money {
	if p.DiscountedPrice == nil {
		return money.Zero
	}
	return p.UnitPrice.Sub(*p.DiscountedPrice)
}

// Variation finds a variation by id.
func (p *Product) Variation(id string) (Variation, bool) {
	for _, v := range p.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// Variation is a specific size/color/SKU combination with its own price and stock.
type Variation struct {
	ID                string      `json:"id"`
	Size              string      `json:"size,omitempty"`
	Color             string      `json:"color,omitempty"`
	SKU               string      `json:"sku,omitempty"`
	Price             money.Money `json:"price"`
	AvailableQuantity int         `json:"availableQuantity"`
}

// Category is a product category as listed in facet data.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Facets is the set of distinct filter values for the current filter context.
type Facets struct {
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
	Categories []Category `json:"categories"`
}

// Filter narrows a product listing. Empty fields do not filter.
type Filter struct {
	CategoryID string `json:"categoryId,omitempty"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
	Price      string `json:"price,omitempty"`
}

// ListQuery is one page request of a filtered listing.
type ListQuery struct {
	Page   int
	Limit  int
	Filter Filter
}

// Values encodes the query in the remote API's parameter names.
// url.Values.Encode sorts keys, so equal queries encode identically.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Filter.CategoryID != "" {
		v.Set("categoryId", q.Filter.CategoryID)
	}
	if q.Filter.Color != "" {
		v.Set("color", q.Filter.Color)
	}
	if q.Filter.Size != "" {
		v.Set("size", q.Filter.Size)
	}
	if q.Filter.Price != "" {
		v.Set("price", q.Filter.Price)
	}
	return v
}

// Page is one page of a product listing.
type Page struct {
	Products      []Product
	TotalProducts int
}

// TotalPages derives the page count for the given page size.
func (p *Page) TotalPages(limit int) int {
	if limit <= 0 || p.TotalProducts <= 0 {
		return 0
	}
	return (p.TotalProducts + limit - 1) / limit
}
