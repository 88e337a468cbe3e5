package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money is rendered as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentStatus is the result kind of a single charge attempt.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentError   PaymentStatus = "error"
)

// PaymentOutcome is the structured result of one gateway charge. It is never
// persisted; the transaction id is copied onto the order on success and the
// whole value is echoed back to the caller on failure.
type PaymentOutcome struct {
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Gateway       string          `json:"gateway"`
	UserID        int64           `json:"user_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Error         string          `json:"error,omitempty"`
}

// Succeeded reports whether the charge was confirmed by the gateway.
func (o PaymentOutcome) Succeeded() bool {
	return o.Status == PaymentSuccess
}
