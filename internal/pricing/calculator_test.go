package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemLookup struct {
	mock.Mock
}

func (m *MockItemLookup) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func book(id int64, price string) *model.Book {
	return &model.Book{ID: id, Title: "Book", Price: decimal.RequireFromString(price)}
}

func TestCalculator_Calculate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		lines      []Line
		setupMock  func(m *MockItemLookup)
		wantTotal  string
		wantTotals []string
	}{
		{
			name:  "Two lines",
			lines: []Line{{BookID: 1, Quantity: 2}, {BookID: 3, Quantity: 1}},
			setupMock: func(m *MockItemLookup) {
				m.On("GetByID", ctx, int64(1)).Return(book(1, "15.99"), nil)
				m.On("GetByID", ctx, int64(3)).Return(book(3, "9.99"), nil)
			},
			wantTotal:  "41.97",
			wantTotals: []string{"31.98", "9.99"},
		},
		{
			name:  "Same book twice keeps both lines",
			lines: []Line{{BookID: 2, Quantity: 1}, {BookID: 2, Quantity: 3}},
			setupMock: func(m *MockItemLookup) {
				m.On("GetByID", ctx, int64(2)).Return(book(2, "0.10"), nil)
			},
			wantTotal:  "0.40",
			wantTotals: []string{"0.10", "0.30"},
		},
		{
			name:  "Free book",
			lines: []Line{{BookID: 4, Quantity: 5}},
			setupMock: func(m *MockItemLookup) {
				m.On("GetByID", ctx, int64(4)).Return(book(4, "0.00"), nil)
			},
			wantTotal:  "0.00",
			wantTotals: []string{"0.00"},
		},
		{
			name:       "Empty input",
			lines:      nil,
			setupMock:  func(m *MockItemLookup) {},
			wantTotal:  "0.00",
			wantTotals: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := new(MockItemLookup)
			tt.setupMock(lookup)

			result, err := NewCalculator(lookup).Calculate(ctx, tt.lines)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantTotal, result.Total.StringFixed(2))
			require.Len(t, result.Lines, len(tt.wantTotals))
			for i, want := range tt.wantTotals {
				line := result.Lines[i]
				assert.Equal(t, tt.lines[i].BookID, line.BookID)
				assert.Equal(t, tt.lines[i].Quantity, line.Quantity)
				assert.Equal(t, want, line.TotalPrice.StringFixed(2))
				assert.True(t, line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Equal(line.TotalPrice))
			}
			lookup.AssertExpectations(t)
		})
	}
}

func TestCalculator_NoFloatingPointDrift(t *testing.T) {
	ctx := context.Background()
	lookup := new(MockItemLookup)
	lookup.On("GetByID", ctx, int64(1)).Return(book(1, "0.10"), nil)

	lines := make([]Line, 1000)
	for i := range lines {
		lines[i] = Line{BookID: 1, Quantity: 1}
	}

	result, err := NewCalculator(lookup).Calculate(ctx, lines)

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100").Equal(result.Total))
}

func TestCalculator_Errors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	t.Run("Unknown book aborts without partial result", func(t *testing.T) {
		lookup := new(MockItemLookup)
		lookup.On("GetByID", ctx, int64(1)).Return(book(1, "15.99"), nil)
		lookup.On("GetByID", ctx, int64(99)).Return(nil, model.ErrBookNotFound)

		result, err := NewCalculator(lookup).Calculate(ctx, []Line{
			{BookID: 1, Quantity: 1},
			{BookID: 99, Quantity: 1},
			{BookID: 3, Quantity: 1},
		})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, model.ErrBookNotFound)

		var notFound *ItemNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 1, notFound.Index)
		assert.Equal(t, int64(99), notFound.BookID)
		lookup.AssertNotCalled(t, "GetByID", ctx, int64(3))
	})

	t.Run("Nil book is treated as unknown", func(t *testing.T) {
		lookup := new(MockItemLookup)
		lookup.On("GetByID", ctx, int64(7)).Return(nil, nil)

		result, err := NewCalculator(lookup).Calculate(ctx, []Line{{BookID: 7, Quantity: 2}})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		lookup := new(MockItemLookup)

		result, err := NewCalculator(lookup).Calculate(ctx, []Line{{BookID: 1, Quantity: 0}})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, model.ErrInvalidQuantity)
		lookup.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Lookup failure is wrapped", func(t *testing.T) {
		lookup := new(MockItemLookup)
		lookup.On("GetByID", ctx, int64(1)).Return(nil, dbErr)

		result, err := NewCalculator(lookup).Calculate(ctx, []Line{{BookID: 1, Quantity: 1}})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, model.ErrBookNotFound)
		assert.Contains(t, err.Error(), "failed to look up book 1")
	})
}
