package dto

import (
	"fmt"
	"strings"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

type CategoryDto struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type VariationDto struct {
	ID       string       `json:"_id"`
	Size     string       `json:"size"`
	Color    string       `json:"color"`
	SKU      string       `json:"sku"`
	Price    *money.Money `json:"price"`
	Quantity *int         `json:"quantity"`
}

type ProductDto struct {
	ID              string         `json:"_id"`
	Name            string         `json:"name"`
	SKU             string         `json:"sku"`
	ProductCode     string         `json:"productCode"`
	Thumbnail       string         `json:"thumbnail"`
	Images          []string       `json:"images"`
	Category        *CategoryDto   `json:"category"`
	Price           *money.Money   `json:"price"`
	DiscountType    string         `json:"discountType"`
	DiscountAmount  *money.Money   `json:"discount"`
	DiscountedPrice *money.Money   `json:"discountedPrice"`
	Quantity        *int           `json:"quantity"`
	Status          string         `json:"status"`
	IsActive        *bool          `json:"isActive"`
	Variations      []VariationDto `json:"variations"`
}

type ProductListResponse struct {
	Products      []ProductDto `json:"products"`
	TotalProducts int          `json:"totalProducts"`
}

type SingleProductResponse struct {
	Product *ProductDto `json:"product"`
}

type FilterDataResponse struct {
	Sizes      []string      `json:"sizes"`
	Colors     []string      `json:"colors"`
	Categories []CategoryDto `json:"categories"`
}

// ToDomain validates a product record. A record without an id, name or a
// non-negative price is rejected; missing optional fields get defaults.
func (p ProductDto) ToDomain() (catalog.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return catalog.Product{}, fmt.Errorf("%w: missing id", catalog.ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return catalog.Product{}, fmt.Errorf("%w: product %s has no name", catalog.ErrInvalidProduct, p.ID)
	}
	if p.Price == nil || p.Price.IsNegative() {
		return catalog.Product{}, fmt.Errorf("%w: product %s has no valid price", catalog.ErrInvalidProduct, p.ID)
	}

	dtype, err := catalog.ParseDiscountType(p.DiscountType)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	discount := catalog.Discount{Type: dtype}
	if p.DiscountAmount != nil {
		discount.Value = *p.DiscountAmount
	}
	if err := discount.Validate(); err != nil {
		// A broken discount is dropped rather than failing the product.
		discount = catalog.Discount{}
	}

	product := catalog.Product{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		ProductCode:       p.ProductCode,
		Thumbnail:         p.Thumbnail,
		Images:            p.Images,
		UnitPrice:         *p.Price,
		Discount:          discount,
		DiscountedPrice:   catalog.NormalizeDiscountedPrice(*p.Price, p.DiscountedPrice, discount),
		AvailableQuantity: intOrZero(p.Quantity),
		Active:            p.active(),
	}
	if product.Thumbnail == "" && len(p.Images) > 0 {
		product.Thumbnail = p.Images[0]
	}
	if p.Category != nil {
		product.CategoryID = p.Category.ID
		product.CategoryName = p.Category.Name
	}

	for _, v := range p.Variations {
		if strings.TrimSpace(v.ID) == "" {
			continue
		}
		price := *p.Price
		if v.Price != nil && v.Price.IsPositive() {
			price = *v.Price
		}
		product.Variations = append(product.Variations, catalog.Variation{
			ID:                v.ID,
			Size:              v.Size,
			Color:             v.Color,
			SKU:               v.SKU,
			Price:             price,
			AvailableQuantity: intOrZero(v.Quantity),
		})
	}
	return product, nil
}

func (p ProductDto) active() bool {
	if p.IsActive != nil {
		return *p.IsActive
	}
	return !strings.EqualFold(p.Status, "inactive")
}

func (c CategoryDto) ToDomain() catalog.Category {
	return catalog.Category{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// ToDomain maps every valid product, skipping malformed records. The number
// skipped is returned for logging.
func (r ProductListResponse) ToDomain() (*catalog.Page, int) {
	page := &catalog.Page{
		Products:      make([]catalog.Product, 0, len(r.Products)),
		TotalProducts: r.TotalProducts,
	}
	skipped := 0
	for _, p := range r.Products {
		product, err := p.ToDomain()
		if err != nil {
			skipped++
			continue
		}
		page.Products = append(page.Products, product)
	}
	return page, skipped
}

func (r FilterDataResponse) ToDomain() *catalog.Facets {
	facets := &catalog.Facets{
		Sizes:      nonNil(r.Sizes),
		Colors:     nonNil(r.Colors),
		Categories: make([]catalog.Category, 0, len(r.Categories)),
	}
	for _, c := range r.Categories {
		facets.Categories = append(facets.Categories, c.ToDomain())
	}
	return facets
}

func intOrZero(n *int) int {
	if n == nil || *n < 0 {
		return 0
	}
	return *n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
