package domain

import (
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// PaymentMethod is how the shopper pays for an order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBkash          PaymentMethod = "bkash"
)

// ParsePaymentMethod defaults to cash on delivery.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cod", "cash_on_delivery":
		return PaymentCashOnDelivery, nil
	case "bkash":
		return PaymentBkash, nil
	default:
		return "", ErrUnsupportedPayment
	}
}

// Customer is the shipping contact for an order.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Validate checks the fields the backend requires.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" || strings.TrimSpace(c.Address) == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// OrderItem is one line of a submitted order.
type OrderItem struct {
	ProductID   string      `json:"productId"`
	VariationID string      `json:"variationId,omitempty"`
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unitPrice"`
	Price       money.Money `json:"price"`
	TotalPrice  money.Money `json:"totalPrice"`
}

// OrderRequest is what the backend receives when an order is placed.
type OrderRequest struct {
	CartID        string
	Customer      Customer
	PaymentMethod PaymentMethod
	Items         []OrderItem
	CouponCode    string
	SubTotal      money.Money
	Discount      money.Money
	Total         money.Money
}

// PlacedOrder is the backend's acknowledgement of an order.
type PlacedOrder struct {
	OrderID     string      `json:"orderId"`
	OrderNumber string      `json:"orderNumber,omitempty"`
	Total       money.Money `json:"total"`
	PaymentURL  string      `json:"paymentUrl,omitempty"`
}

// PaymentRequest starts a bKash payment for a placed order.
type PaymentRequest struct {
	OrderID       string
	Amount        money.Money
	CustomerPhone string
	CallbackURL   string
}
