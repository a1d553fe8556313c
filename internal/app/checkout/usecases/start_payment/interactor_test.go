package start_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/checkout/checkouttest"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func TestStartPayment(t *testing.T) {
	orders := &checkouttest.OrderService{RedirectURL: "https://pay.example.com/r/1"}
	interactor := NewInteractor(orders)

	res, err := interactor.Execute(context.Background(), &Request{OrderID: "o1", Amount: money.FromInt(500), CustomerPhone: "017"})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/r/1", res.RedirectURL)
	require.Len(t, orders.Payments, 1)
	assert.Equal(t, "o1", orders.Payments[0].OrderID)

	_, err = interactor.Execute(context.Background(), &Request{OrderID: "o1"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)
}
