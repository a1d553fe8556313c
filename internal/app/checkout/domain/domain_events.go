package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// OrderPlacedEvent is published after the backend accepted an order.
type OrderPlacedEvent struct {
	CartID        string        `json:"cartId"`
	OrderID       string        `json:"orderId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CouponCode    string        `json:"couponCode,omitempty"`
	ItemCount     int           `json:"itemCount"`
	Total         money.Money   `json:"total"`
	PlacedAt      time.Time     `json:"placedAt"`
}

func (e *OrderPlacedEvent) EventType() string   { return "order.placed" }
func (e *OrderPlacedEvent) AggregateID() string { return e.CartID }
