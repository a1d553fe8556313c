package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_facets"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/search_products"
)

// CatalogHandler serves product listings, facets, search and detail.
type CatalogHandler struct {
	listProducts   *list_products.Query
	getFacets      *get_facets.Query
	searchProducts *search_products.Query
	getProduct     *get_product.Query
}

func NewCatalogHandler(
	listProducts *list_products.Query,
	getFacets *get_facets.Query,
	searchProducts *search_products.Query,
	getProduct *get_product.Query,
) *CatalogHandler {
	return &CatalogHandler{
		listProducts:   listProducts,
		getFacets:      getFacets,
		searchProducts: searchProducts,
		getProduct:     getProduct,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res, err := h.listProducts.Execute(r.Context(), &list_products.Request{
		Page:   page,
		Limit:  limit,
		Filter: filterFromQuery(r),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) FilterData(w http.ResponseWriter, r *http.Request) {
	facets, err := h.getFacets.Execute(r.Context(), &get_facets.Request{CategoryID: r.URL.Query().Get("categoryId")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, facets)
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.searchProducts.Execute(r.Context(), &search_products.Request{Query: r.URL.Query().Get("query")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProduct.Execute(r.Context(), &get_product.Request{ProductID: chi.URLParam(r, "id")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		CategoryID: q.Get("categoryId"),
		Color:      q.Get("color"),
		Size:       q.Get("size"),
		Price:      q.Get("price"),
	}
}
