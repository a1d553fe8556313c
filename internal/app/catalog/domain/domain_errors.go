package domain

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidProduct      = errors.New("invalid product record")
	ErrUnknownDiscountType = errors.New("unknown discount type")
	ErrInvalidDiscount     = errors.New("discount value out of range")
)
