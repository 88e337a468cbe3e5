package service

import (
	"context"
	"fmt"

	"github.com/KhashayarRezaei/bookverse/internal/model"
	"github.com/KhashayarRezaei/bookverse/internal/repository"

	"github.com/rs/zerolog"
)

// bookService implements BookService.
type bookService struct {
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewBookService creates a new book service.
func NewBookService(bookRepo repository.BookRepository, logger zerolog.Logger) BookService {
	return &bookService{
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "book").Logger(),
	}
}

// GetAll retrieves books with pagination.
func (s *bookService) GetAll(ctx context.Context, limit, offset int) ([]model.Book, error) {
	limit, offset = normalizePage(limit, offset)

	books, err := s.bookRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all books")
		return nil, fmt.Errorf("failed to get books: %w", err)
	}

	s.logger.Debug().
		Int("count", len(books)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved books")

	return books, nil
}

// GetByID retrieves a single book by ID.
func (s *bookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("book_id", id).Msg("failed to get book by ID")
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if book == nil {
		s.logger.Debug().Int64("book_id", id).Msg("book not found")
		return nil, model.ErrBookNotFound
	}

	return book, nil
}

// Import upserts books by ISBN. It stops at the first failure.
func (s *bookService) Import(ctx context.Context, books []model.Book) (int, error) {
	imported := 0
	for i := range books {
		if books[i].Price.IsNegative() {
			return imported, fmt.Errorf("book %s: price must not be negative", books[i].ISBN)
		}
		if err := s.bookRepo.Upsert(ctx, &books[i]); err != nil {
			return imported, fmt.Errorf("failed to import books: %w", err)
		}
		imported++
	}

	s.logger.Info().Int("count", imported).Msg("books imported")

	return imported, nil
}

// normalizePage clamps pagination parameters to 1..100 and a non-negative offset.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
