// Package pricing computes order line totals and grand totals from cart lines.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/shopspring/decimal"
)

// ItemLookup resolves a book by id. A missing id is reported either as
// model.ErrBookNotFound or as a nil book.
type ItemLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Book, error)
}

// Line is one requested (book, quantity) pair.
type Line struct {
	BookID   int64
	Quantity int
}

// PricedLine is a Line with its unit price snapshot and line total.
type PricedLine struct {
	BookID     int64
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// Result holds the priced lines in request order and their sum.
type Result struct {
	Lines []PricedLine
	Total decimal.Decimal
}

// ItemNotFoundError reports the position and id of a line whose book does not exist.
type ItemNotFoundError struct {
	Index  int
	BookID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d: book %d not found", e.Index, e.BookID)
}

func (e *ItemNotFoundError) Unwrap() error {
	return model.ErrBookNotFound
}

// InvalidQuantityError reports a line whose quantity is below one.
type InvalidQuantityError struct {
	Index    int
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("item %d: invalid quantity %d", e.Index, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error {
	return model.ErrInvalidQuantity
}

// Calculator prices cart lines against the catalog.
type Calculator struct {
	lookup ItemLookup
}

// NewCalculator creates a calculator reading prices through lookup.
func NewCalculator(lookup ItemLookup) *Calculator {
	return &Calculator{lookup: lookup}
}

// Calculate prices every line. The computation is all-or-nothing: the first
// unknown book aborts it and no partial result is returned. An empty input
// yields an empty result with a zero total.
func (c *Calculator) Calculate(ctx context.Context, lines []Line) (*Result, error) {
	result := &Result{
		Lines: make([]PricedLine, 0, len(lines)),
		Total: decimal.Zero,
	}

	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, &InvalidQuantityError{Index: i, Quantity: line.Quantity}
		}

		book, err := c.lookup.GetByID(ctx, line.BookID)
		if err != nil {
			if errors.Is(err, model.ErrBookNotFound) {
				return nil, &ItemNotFoundError{Index: i, BookID: line.BookID}
			}
			return nil, fmt.Errorf("failed to look up book %d: %w", line.BookID, err)
		}
		if book == nil {
			return nil, &ItemNotFoundError{Index: i, BookID: line.BookID}
		}

		lineTotal := book.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		result.Lines = append(result.Lines, PricedLine{
			BookID:     book.ID,
			Quantity:   line.Quantity,
			UnitPrice:  book.Price,
			TotalPrice: lineTotal,
		})
		result.Total = result.Total.Add(lineTotal)
	}

	return result, nil
}
