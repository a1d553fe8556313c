package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
)

// OrderService submits orders and starts payments on the remote backend.
type OrderService interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.PlacedOrder, error)

	// BkashCheckout returns the URL the shopper is redirected to.
	BkashCheckout(ctx context.Context, req domain.PaymentRequest) (string, error)
}
