package model

import (
	"fmt"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message      string              `json:"message"`
	Errors       map[string][]string `json:"errors,omitempty"`
	PaymentError *PaymentOutcome     `json:"payment_error,omitempty"`
}

// Standard error codes for domain errors
const (
	ErrCodeBookNotFound     = "BOOK_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeOrderNotRecorded = "ORDER_NOT_RECORDED"
	ErrCodeTotalTooLarge    = "TOTAL_TOO_LARGE"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrBookNotFound     = NewDomainError(ErrCodeBookNotFound, "The selected book does not exist.")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found.")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1.")
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "At least one item is required.")
	ErrInvalidStatus    = NewDomainError(ErrCodeInvalidStatus, "The selected status is invalid.")
	ErrOrderNotRecorded = NewDomainError(ErrCodeOrderNotRecorded, "The order could not be recorded.")
	ErrTotalTooLarge    = NewDomainError(ErrCodeTotalTooLarge, "The order total may not be greater than 99999999.99.")
)

// FieldError attributes a validation message to a request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is a list of field-level validation failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields groups the messages by field path.
func (v ValidationErrors) Fields() map[string][]string {
	fields := make(map[string][]string, len(v))
	for _, fe := range v {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}
	return fields
}

// PaymentFailedError is returned when the gateway did not confirm a charge.
type PaymentFailedError struct {
	Outcome PaymentOutcome
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed via %s: %s", e.Outcome.Gateway, e.Outcome.Error)
}
