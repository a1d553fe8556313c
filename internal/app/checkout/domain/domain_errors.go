package domain

import (
	"errors"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

var (
	ErrCartChanged        = errors.New("cart changed since it was reconciled")
	ErrInvalidCustomer    = errors.New("customer name, phone and address are required")
	ErrUnsupportedPayment = errors.New("unsupported payment method")
	ErrPaymentUnavailable = errors.New("payment provider returned no redirect url")
	ErrInvalidPayment     = errors.New("order id and a positive amount are required")
)

// OrderRejectedError is a refusal by the backend with its message.
type OrderRejectedError struct {
	Message string
}

func (e *OrderRejectedError) Error() string {
	if e.Message == "" {
		return "order was rejected"
	}
	return e.Message
}

// CartChangedError carries the drift found when an order was attempted on a
// stale cart. It matches ErrCartChanged.
type CartChangedError struct {
	Result cart.ReconcileResult
}

func (e *CartChangedError) Error() string {
	return ErrCartChanged.Error()
}

func (e *CartChangedError) Is(target error) bool {
	return target == ErrCartChanged
}
