package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// DomainEvent is an analytics fact recorded by the cart.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// CartItemAddedEvent is emitted on every add, including merges.
type CartItemAddedEvent struct {
	CartID      string      `json:"cartId"`
	ProductID   string      `json:"productId"`
	VariationID string      `json:"variationId,omitempty"`
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	Price       money.Money `json:"price"`
	AddedAt     time.Time   `json:"addedAt"`
}

func (e *CartItemAddedEvent) EventType() string   { return "cart.item_added" }
func (e *CartItemAddedEvent) AggregateID() string { return e.CartID }

// CartItemUpdatedEvent is emitted when a line is replaced.
type CartItemUpdatedEvent struct {
	CartID      string    `json:"cartId"`
	ProductID   string    `json:"productId"`
	VariationID string    `json:"variationId,omitempty"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *CartItemUpdatedEvent) EventType() string   { return "cart.item_updated" }
func (e *CartItemUpdatedEvent) AggregateID() string { return e.CartID }

// CartItemRemovedEvent names the line that was removed.
type CartItemRemovedEvent struct {
	CartID      string      `json:"cartId"`
	ProductID   string      `json:"productId"`
	VariationID string      `json:"variationId,omitempty"`
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	Price       money.Money `json:"price"`
	RemovedAt   time.Time   `json:"removedAt"`
}

func (e *CartItemRemovedEvent) EventType() string   { return "cart.item_removed" }
func (e *CartItemRemovedEvent) AggregateID() string { return e.CartID }

type CartClearedEvent struct {
	CartID    string    `json:"cartId"`
	ItemCount int       `json:"itemCount"`
	ClearedAt time.Time `json:"clearedAt"`
}

func (e *CartClearedEvent) EventType() string   { return "cart.cleared" }
func (e *CartClearedEvent) AggregateID() string { return e.CartID }

// CartReconciledEvent is emitted when a shopper accepts corrected items.
type CartReconciledEvent struct {
	CartID       string    `json:"cartId"`
	ChangedItems int       `json:"changedItems"`
	DroppedItems int       `json:"droppedItems"`
	ConfirmedAt  time.Time `json:"confirmedAt"`
}

func (e *CartReconciledEvent) EventType() string   { return "cart.reconciled" }
func (e *CartReconciledEvent) AggregateID() string { return e.CartID }

type CouponAppliedEvent struct {
	CartID         string      `json:"cartId"`
	Code           string      `json:"code"`
	Source         string      `json:"source"`
	DiscountAmount money.Money `json:"discountAmount"`
	AppliedAt      time.Time   `json:"appliedAt"`
}

func (e *CouponAppliedEvent) EventType() string   { return "cart.coupon_applied" }
func (e *CouponAppliedEvent) AggregateID() string { return e.CartID }

type CouponRemovedEvent struct {
	CartID    string    `json:"cartId"`
	Code      string    `json:"code"`
	RemovedAt time.Time `json:"removedAt"`
}

func (e *CouponRemovedEvent) EventType() string   { return "cart.coupon_removed" }
func (e *CouponRemovedEvent) AggregateID() string { return e.CartID }
