// Package events publishes order domain events to a configurable sink.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type names an order domain event.
type Type string

const (
	OrderPlaced        Type = "order.placed"
	OrderStatusChanged Type = "order.status_changed"
)

// Event is the envelope written to every sink.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	OrderID    uuid.UUID `json:"order_id"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// OrderPlacedPayload is carried by OrderPlaced events.
type OrderPlacedPayload struct {
	OrderID     uuid.UUID         `json:"order_id"`
	UserID      int64             `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      model.OrderStatus `json:"status"`
	Message     string            `json:"message"`
}

// StatusChangedPayload is carried by OrderStatusChanged events.
type StatusChangedPayload struct {
	OrderID     uuid.UUID         `json:"order_id"`
	UserID      int64             `json:"user_id"`
	OldStatus   model.OrderStatus `json:"old_status"`
	NewStatus   model.OrderStatus `json:"new_status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// Publisher delivers events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewOrderPlaced builds the event emitted after an order is committed.
func NewOrderPlaced(order *model.Order) Event {
	return Event{
		ID:         uuid.New(),
		Type:       OrderPlaced,
		OrderID:    order.ID,
		UserID:     order.UserID,
		OccurredAt: time.Now().UTC(),
		Payload: OrderPlacedPayload{
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			Message:     fmt.Sprintf("Your order #%s has been placed successfully!", order.ID),
		},
	}
}

// NewOrderStatusChanged builds the event emitted after an admin status change.
func NewOrderStatusChanged(order *model.Order, previous model.OrderStatus) Event {
	return Event{
		ID:         uuid.New(),
		Type:       OrderStatusChanged,
		OrderID:    order.ID,
		UserID:     order.UserID,
		OccurredAt: time.Now().UTC(),
		Payload: StatusChangedPayload{
			OrderID:     order.ID,
			UserID:      order.UserID,
			OldStatus:   previous,
			NewStatus:   order.Status,
			TotalAmount: order.TotalAmount,
		},
	}
}
