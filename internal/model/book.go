package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book represents a purchasable title in the catalogue.
type Book struct {
	ID        int64           `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Author    string          `json:"author" db:"author"`
	ISBN      string          `json:"isbn" db:"isbn"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
