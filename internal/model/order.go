package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxItemQuantity is the largest quantity the INTEGER order_items.quantity
// column holds. Larger requests are rejected before any payment is attempted.
const MaxItemQuantity = 2147483647

// MaxOrderTotal is the largest value a NUMERIC(10,2) amount column holds.
var MaxOrderTotal = decimal.RequireFromString("99999999.99")

// OrderStatus is the lifecycle state of a persisted order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status an order may hold.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order represents one completed purchase.
type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	Status        OrderStatus     `json:"status" db:"status"`
	TransactionID *string         `json:"transaction_id" db:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Items         []OrderItem     `json:"items" db:"-"`
}

// OrderItem represents one priced line of an order. Its prices are a
// snapshot taken at purchase time and never change afterwards.
type OrderItem struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	OrderID    uuid.UUID       `json:"order_id" db:"order_id"`
	BookID     int64           `json:"book_id" db:"book_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=stripe paypal"`
}

// OrderItemRequest represents a single cart line in an order request.
type OrderItemRequest struct {
	BookID   int64 `json:"book_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"min=1,max=2147483647"`
}

// CheckoutResponse is returned when an order has been paid and recorded.
type CheckoutResponse struct {
	Message string         `json:"message"`
	Order   *Order         `json:"order"`
	Payment PaymentOutcome `json:"payment"`
}

// OrderListResponse wraps a page of orders.
type OrderListResponse struct {
	Data   []Order `json:"data"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	UserID *int64
	Status *OrderStatus
	Limit  int
	Offset int
}

// StatusUpdateRequest is the admin payload for changing an order status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

// OrderStats summarises all orders for the back-office dashboard.
type OrderStats struct {
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PendingOrders     int64           `json:"pending_orders"`
	PaidOrders        int64           `json:"paid_orders"`
	ShippedOrders     int64           `json:"shipped_orders"`
	DeliveredOrders   int64           `json:"delivered_orders"`
	CancelledOrders   int64           `json:"cancelled_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}
