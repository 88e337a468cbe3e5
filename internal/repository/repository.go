package repository

import (
	"context"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookRepository defines the interface for book data access operations.
type BookRepository interface {
	// GetAll retrieves books with pagination support, ordered by title.
	GetAll(ctx context.Context, limit, offset int) ([]model.Book, error)

	// GetByID retrieves a single book by its ID. Returns nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// Upsert inserts a book or updates the existing book with the same ISBN.
	Upsert(ctx context.Context, book *model.Book) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's lines within the provided transaction,
	// preserving their order.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	// Returns nil when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching filter, newest first, with their items.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus sets the status of an order and returns the status it replaced.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.OrderStatus, error)

	// Stats aggregates order counts and revenue.
	Stats(ctx context.Context) (*model.OrderStats, error)
}
