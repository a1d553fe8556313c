package domain

import "github.com/light-bringer/storefront-service/internal/pkg/money"

// OrderLine is the per-product part of a validation request.
type OrderLine struct {
	ProductID    string      `json:"productId"`
	VariationID  string      `json:"variationId,omitempty"`
	CategoryName string      `json:"categoryName,omitempty"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
}

// ValidationRequest asks the backend whether a code applies to an order.
type ValidationRequest struct {
	Code          string
	CustomerPhone string
	OrderTotal    money.Money
	Products      []OrderLine
}

// ValidationResult is the backend's verdict.
type ValidationResult struct {
	Valid  bool
	Coupon *Coupon
	Reason string
}
