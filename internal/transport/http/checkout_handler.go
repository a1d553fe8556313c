package http

import (
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/confirm_changes"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/reconcile_cart"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/start_payment"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// CheckoutHandler runs reconciliation, order placement and payment start.
type CheckoutHandler struct {
	reconcileCart  *reconcile_cart.Interactor
	confirmChanges *confirm_changes.Interactor
	placeOrder     *place_order.Interactor
	startPayment   *start_payment.Interactor
}

func NewCheckoutHandler(
	reconcileCart *reconcile_cart.Interactor,
	confirmChanges *confirm_changes.Interactor,
	placeOrder *place_order.Interactor,
	startPayment *start_payment.Interactor,
) *CheckoutHandler {
	return &CheckoutHandler{
		reconcileCart:  reconcileCart,
		confirmChanges: confirmChanges,
		placeOrder:     placeOrder,
		startPayment:   startPayment,
	}
}

type placeOrderRequestDTO struct {
	Customer      domain.Customer `json:"customer"`
	PaymentMethod string          `json:"paymentMethod"`
	CallbackURL   string          `json:"callbackUrl"`
}

type startPaymentRequestDTO struct {
	OrderID       string      `json:"orderId"`
	Amount        money.Money `json:"amount"`
	CustomerPhone string      `json:"customerPhone"`
	CallbackURL   string      `json:"callbackUrl"`
}

func (h *CheckoutHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	res, err := h.reconcileCart.Execute(r.Context(), &reconcile_cart.Request{CartID: cartIDFromContext(r.Context())})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	res, err := h.confirmChanges.Execute(r.Context(), &confirm_changes.Request{CartID: cartIDFromContext(r.Context())})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	placed, err := h.placeOrder.Execute(r.Context(), &place_order.Request{
		CartID:        cartIDFromContext(r.Context()),
		Customer:      req.Customer,
		PaymentMethod: req.PaymentMethod,
		CallbackURL:   req.CallbackURL,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

func (h *CheckoutHandler) StartBkash(w http.ResponseWriter, r *http.Request) {
	var req startPaymentRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	res, err := h.startPayment.Execute(r.Context(), &start_payment.Request{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		CustomerPhone: req.CustomerPhone,
		CallbackURL:   req.CallbackURL,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
