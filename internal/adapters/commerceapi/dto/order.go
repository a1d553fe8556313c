package dto

import (
	"encoding/json"
	"strings"

	checkout "github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

type OrderItemDto struct {
	ProductID   string      `json:"productId"`
	VariationID string      `json:"variationId,omitempty"`
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unitPrice"`
	Price       money.Money `json:"price"`
	TotalPrice  money.Money `json:"totalPrice"`
}

type CreateOrderRequest struct {
	Customer      checkout.Customer `json:"customer"`
	Items         []OrderItemDto    `json:"items"`
	CouponCode    string            `json:"couponCode,omitempty"`
	SubTotal      money.Money       `json:"subTotal"`
	Discount      money.Money       `json:"discount"`
	Total         money.Money       `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
}

func NewCreateOrderRequest(req checkout.OrderRequest) CreateOrderRequest {
	body := CreateOrderRequest{
		Customer:      req.Customer,
		Items:         make([]OrderItemDto, 0, len(req.Items)),
		CouponCode:    req.CouponCode,
		SubTotal:      req.SubTotal,
		Discount:      req.Discount,
		Total:         req.Total,
		PaymentMethod: string(req.PaymentMethod),
	}
	for _, it := range req.Items {
		body.Items = append(body.Items, OrderItemDto(it))
	}
	return body
}

type OrderDataDto struct {
	ID          string       `json:"_id"`
	OrderNumber string       `json:"orderNumber"`
	Total       *money.Money `json:"total"`
}

type CreateOrderResponse struct {
	Success bool          `json:"success"`
	Data    *OrderDataDto `json:"data"`
	Error   string        `json:"error"`
	Message string        `json:"message"`
}

// ToDomain returns the placed order or the backend's rejection.
func (r CreateOrderResponse) ToDomain(requested money.Money) (*checkout.PlacedOrder, error) {
	if !r.Success || r.Data == nil || r.Data.ID == "" {
		msg := r.Error
		if msg == "" {
			msg = r.Message
		}
		return nil, &checkout.OrderRejectedError{Message: msg}
	}
	total := requested
	if r.Data.Total != nil {
		total = *r.Data.Total
	}
	return &checkout.PlacedOrder{
		OrderID:     r.Data.ID,
		OrderNumber: r.Data.OrderNumber,
		Total:       total,
	}, nil
}

type BkashCheckoutRequest struct {
	OrderID       string      `json:"orderId"`
	Amount        money.Money `json:"amount"`
	CustomerPhone string      `json:"customerPhone"`
	CallbackURL   string      `json:"callbackURL,omitempty"`
}

// ParseRedirectURL accepts a bare URL, a JSON string or an object carrying
// the URL under one of the names the gateway has used.
func ParseRedirectURL(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return strings.TrimSpace(s)
		}
	case '{':
		var obj struct {
			BkashURL string `json:"bkashURL"`
			URL      string `json:"url"`
			Data     string `json:"data"`
		}
		if err := json.Unmarshal(body, &obj); err == nil {
			for _, s := range []string{obj.BkashURL, obj.URL, obj.Data} {
				if s != "" {
					return strings.TrimSpace(s)
				}
			}
		}
		return ""
	}
	return raw
}
