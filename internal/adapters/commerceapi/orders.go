package commerceapi

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/light-bringer/storefront-service/internal/adapters/commerceapi/dto"
	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	checkout "github.com/light-bringer/storefront-service/internal/app/checkout/domain"
)

var _ contracts.OrderService = (*Client)(nil)

// CreateOrder submits an order. A 4xx with a JSON body is decoded so the
// backend's message reaches the shopper.
func (c *Client) CreateOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.PlacedOrder, error) {
	var resp dto.CreateOrderResponse
	err := c.postJSON(ctx, "/order/create", dto.NewCreateOrderRequest(req), &resp)
	if err != nil {
		var se *StatusError
		if !errors.As(err, &se) || se.StatusCode >= 500 {
			return nil, err
		}
		if jerr := json.Unmarshal([]byte(se.Body), &resp); jerr != nil {
			return nil, &checkout.OrderRejectedError{Message: se.Body}
		}
		resp.Success = false
	}
	return resp.ToDomain(req.Total)
}

func (c *Client) BkashCheckout(ctx context.Context, req checkout.PaymentRequest) (string, error) {
	body, err := c.postRaw(ctx, "/bkash/bkash-checkout", dto.BkashCheckoutRequest{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		CustomerPhone: req.CustomerPhone,
		CallbackURL:   req.CallbackURL,
	})
	if err != nil {
		return "", err
	}
	redirect := dto.ParseRedirectURL(body)
	if redirect == "" {
		return "", checkout.ErrPaymentUnavailable
	}
	return redirect, nil
}
