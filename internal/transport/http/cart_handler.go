package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/update_item"
)

// CartHandler serves the shopper's cart, identified by X-Cart-ID.
type CartHandler struct {
	getCart    *get_cart.Query
	addItem    *add_item.Interactor
	updateItem *update_item.Interactor
	removeItem *remove_item.Interactor
	clearCart  *clear_cart.Interactor
}

func NewCartHandler(
	getCart *get_cart.Query,
	addItem *add_item.Interactor,
	updateItem *update_item.Interactor,
	removeItem *remove_item.Interactor,
	clearCart *clear_cart.Interactor,
) *CartHandler {
	return &CartHandler{
		getCart:    getCart,
		addItem:    addItem,
		updateItem: updateItem,
		removeItem: removeItem,
		clearCart:  clearCart,
	}
}

type addItemRequestDTO struct {
	ProductID   string `json:"productId"`
	VariationID string `json:"variationId"`
	Quantity    int    `json:"quantity"`
}

type updateItemRequestDTO struct {
	ProductID      string `json:"productId"`
	VariationID    string `json:"variationId"`
	NewVariationID string `json:"newVariationId"`
	Quantity       int    `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.getCart.Execute(r.Context(), &get_cart.Request{CartID: cartIDFromContext(r.Context())})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required", nil)
		return
	}

	view, err := h.addItem.Execute(r.Context(), &add_item.Request{
		CartID:      cartIDFromContext(r.Context()),
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required", nil)
		return
	}

	view, err := h.updateItem.Execute(r.Context(), &update_item.Request{
		CartID:         cartIDFromContext(r.Context()),
		ProductID:      req.ProductID,
		VariationID:    req.VariationID,
		NewVariationID: req.NewVariationID,
		Quantity:       req.Quantity,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "index must be an integer", nil)
		return
	}

	view, err := h.removeItem.Execute(r.Context(), &remove_item.Request{
		CartID: cartIDFromContext(r.Context()),
		Index:  index,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.clearCart.Execute(r.Context(), &clear_cart.Request{CartID: cartIDFromContext(r.Context())})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
