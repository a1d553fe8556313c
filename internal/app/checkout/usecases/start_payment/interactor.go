package start_payment

import (
	"context"
	"strings"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

type Request struct {
	OrderID       string
	Amount        money.Money
	CustomerPhone string
	CallbackURL   string
}

type Result struct {
	RedirectURL string `json:"redirectUrl"`
}

// Interactor starts a bKash payment for an order that was already placed.
type Interactor struct {
	orders contracts.OrderService
}

func NewInteractor(orders contracts.OrderService) *Interactor {
	return &Interactor{orders: orders}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if strings.TrimSpace(req.OrderID) == "" || !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidPayment
	}
	redirect, err := i.orders.BkashCheckout(ctx, domain.PaymentRequest{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		CustomerPhone: req.CustomerPhone,
		CallbackURL:   req.CallbackURL,
	})
	if err != nil {
		return nil, err
	}
	return &Result{RedirectURL: redirect}, nil
}
