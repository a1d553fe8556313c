// Package checkouttest provides an in-memory order service for tests.
package checkouttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
)

// OrderService records submitted orders and payments.
type OrderService struct {
	mu sync.Mutex

	Orders   []domain.OrderRequest
	Payments []domain.PaymentRequest

	// OrderErr fails CreateOrder; PaymentErr fails BkashCheckout.
	OrderErr   error
	PaymentErr error
	// RedirectURL is returned by BkashCheckout.
	RedirectURL string
	// OnCreate runs after an order is recorded, outside the lock.
	OnCreate func()
}

func (s *OrderService) CreateOrder(_ context.Context, req domain.OrderRequest) (*domain.PlacedOrder, error) {
	s.mu.Lock()
	if s.OrderErr != nil {
		s.mu.Unlock()
		return nil, s.OrderErr
	}
	s.Orders = append(s.Orders, req)
	n := len(s.Orders)
	hook := s.OnCreate
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return &domain.PlacedOrder{
		OrderID:     fmt.Sprintf("order-%d", n),
		OrderNumber: fmt.Sprintf("SF-%d", 1000+n),
		Total:       req.Total,
	}, nil
}

func (s *OrderService) BkashCheckout(_ context.Context, req domain.PaymentRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PaymentErr != nil {
		return "", s.PaymentErr
	}
	s.Payments = append(s.Payments, req)
	return s.RedirectURL, nil
}
