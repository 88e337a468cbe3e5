package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bookRepository implements the BookRepository interface using PostgreSQL.
type bookRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool *pgxpool.Pool, logger zerolog.Logger) BookRepository {
	return &bookRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "book").Logger(),
	}
}

// GetAll retrieves books with pagination support, ordered by title.
func (r *bookRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Book, error) {
	query := `
		SELECT id, title, author, isbn, price, created_at
		FROM books
		ORDER BY title, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query books")
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan book row")
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating book rows")
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// GetByID retrieves a single book by its ID.
func (r *bookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT id, title, author, isbn, price, created_at
		FROM books
		WHERE id = $1
	`

	var b model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("book_id", id).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("book_id", id).Msg("failed to query book")
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return &b, nil
}

// Upsert inserts a book or updates the existing book with the same ISBN.
// The book's ID and CreatedAt are filled from the stored row.
func (r *bookRepository) Upsert(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (isbn) DO UPDATE
		SET title = EXCLUDED.title,
		    author = EXCLUDED.author,
		    price = EXCLUDED.price
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, book.Title, book.Author, book.ISBN, book.Price).
		Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("failed to upsert book")
		return fmt.Errorf("failed to upsert book %s: %w", book.ISBN, err)
	}

	r.logger.Debug().
		Int64("book_id", book.ID).
		Str("isbn", book.ISBN).
		Msg("book upserted")

	return nil
}
