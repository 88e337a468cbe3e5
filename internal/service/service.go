package service

import (
	"context"

	"github.com/KhashayarRezaei/bookverse/internal/model"
	"github.com/KhashayarRezaei/bookverse/internal/payment"

	"github.com/google/uuid"
)

// BookService defines operations on the book catalogue.
type BookService interface {
	// GetAll retrieves books with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Book, error)

	// GetByID retrieves a single book. Returns model.ErrBookNotFound when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// Import upserts books by ISBN and returns how many were written.
	Import(ctx context.Context, books []model.Book) (int, error)
}

// OrderService defines checkout and order management operations.
type OrderService interface {
	// Checkout prices the request, charges the payer through the selected
	// gateway and records the order only if the charge succeeded.
	Checkout(ctx context.Context, userID int64, req *model.OrderRequest) (*model.CheckoutResponse, error)

	// ListOrders retrieves orders matching filter, newest first.
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetOrder retrieves any order by ID.
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetUserOrder retrieves an order by ID if it belongs to userID.
	GetUserOrder(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.StatusUpdateRequest) (*model.Order, error)

	// Stats summarises all orders.
	Stats(ctx context.Context) (*model.OrderStats, error)
}

// GatewayFactory resolves a payment method name to a gateway.
type GatewayFactory interface {
	Create(method string) (payment.Gateway, error)
}
