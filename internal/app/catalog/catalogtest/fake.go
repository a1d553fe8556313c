// Package catalogtest provides an in-memory contracts.Catalog for tests.
package catalogtest

import (
	"context"
	"strings"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Fake serves products from memory and records calls. Hooks, when set,
// replace the default behavior of the matching method.
type Fake struct {
	mu       sync.Mutex
	products map[string]domain.Product
	order    []string
	facets   map[string]domain.Facets

	ListHook   func(ctx context.Context, q domain.ListQuery) (*domain.Page, error)
	FacetsHook func(ctx context.Context, categoryID string) (*domain.Facets, error)
	GetHook    func(ctx context.Context, productID string) (*domain.Product, error)

	ListCalls   []domain.ListQuery
	FacetCalls  []string
	GetCalls    []string
	SearchCalls []string
}

// NewFake returns a Fake holding the given products in order.
func NewFake(products ...domain.Product) *Fake {
	f := &Fake{
		products: make(map[string]domain.Product),
		facets:   make(map[string]domain.Facets),
	}
	for _, p := range products {
		f.Put(p)
	}
	return f
}

// Put adds or replaces a product.
func (f *Fake) Put(p domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.products[p.ID] = p
}

// Delete removes a product.
func (f *Fake) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// SetFacets sets the facet values returned for a category.
func (f *Fake) SetFacets(categoryID string, facets domain.Facets) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.facets[categoryID] = facets
}

func (f *Fake) ListProducts(ctx context.Context, q domain.ListQuery) (*domain.Page, error) {
	f.mu.Lock()
	f.ListCalls = append(f.ListCalls, q)
	hook := f.ListHook
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, q)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.Product
	for _, id := range f.order {
		p := f.products[id]
		if q.Filter.CategoryID != "" && p.CategoryID != q.Filter.CategoryID {
			continue
		}
		matched = append(matched, p)
	}
	start := (q.Page - 1) * q.Limit
	if start < 0 || start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return &domain.Page{Products: matched[start:end], TotalProducts: len(matched)}, nil
}

func (f *Fake) FilterData(ctx context.Context, categoryID string) (*domain.Facets, error) {
	f.mu.Lock()
	f.FacetCalls = append(f.FacetCalls, categoryID)
	hook := f.FacetsHook
	facets := f.facets[categoryID]
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, categoryID)
	}
	return &facets, nil
}

func (f *Fake) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	f.mu.Lock()
	f.GetCalls = append(f.GetCalls, productID)
	hook := f.GetHook
	p, ok := f.products[productID]
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, productID)
	}
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (f *Fake) Search(ctx context.Context, query string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchCalls = append(f.SearchCalls, query)
	out := []domain.Product{}
	for _, id := range f.order {
		p := f.products[id]
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Calls returns how many list, facet and get calls were made.
func (f *Fake) Calls() (list, facets, get int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ListCalls), len(f.FacetCalls), len(f.GetCalls)
}
