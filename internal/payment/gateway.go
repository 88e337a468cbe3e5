// Package payment provides the payment gateway abstraction, its simulated
// Stripe-like and PayPal-like variants, and the factory selecting between them.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Gateway charges a payer for the full order total.
//
// Charge never reports failure through a Go error: every call returns exactly
// one outcome, either a success carrying a unique transaction id or an error
// carrying a description. Context cancellation and deadlines are error outcomes.
type Gateway interface {
	// Name returns the gateway tag embedded in outcomes and transaction ids.
	Name() string

	// Charge attempts to charge payerID the given amount.
	Charge(ctx context.Context, payerID int64, amount decimal.Decimal) model.PaymentOutcome
}

// simulator is the shared charge routine of the simulated gateways. It makes
// no network call; latency and declines are driven by configuration.
type simulator struct {
	tag         string
	latency     time.Duration
	failureRate float64
	now         func() time.Time
	logger      zerolog.Logger
}

func newSimulator(tag string, cfg config.GatewayConfig, logger zerolog.Logger) simulator {
	return simulator{
		tag:         tag,
		latency:     cfg.Latency,
		failureRate: cfg.FailureRate,
		now:         time.Now,
		logger:      logger.With().Str("gateway", tag).Logger(),
	}
}

func (s simulator) charge(ctx context.Context, payerID int64, amount decimal.Decimal) model.PaymentOutcome {
	outcome := model.PaymentOutcome{
		Amount:  amount,
		Gateway: s.tag,
		UserID:  payerID,
	}

	if amount.IsNegative() {
		return s.fail(outcome, "amount must not be negative")
	}

	if err := s.wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return s.fail(outcome, "payment gateway timed out")
		}
		return s.fail(outcome, "payment was cancelled")
	}

	if s.declined() {
		return s.fail(outcome, fmt.Sprintf("Payment declined by %s", s.tag))
	}

	ts := s.now().UTC()
	outcome.Status = model.PaymentSuccess
	outcome.TransactionID = s.transactionID(ts)
	outcome.Timestamp = ts

	s.logger.Debug().
		Int64("user_id", payerID).
		Str("amount", amount.StringFixed(2)).
		Str("transaction_id", outcome.TransactionID).
		Msg("charge succeeded")

	return outcome
}

// wait simulates processing latency while honouring ctx.
func (s simulator) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s simulator) declined() bool {
	switch {
	case s.failureRate <= 0:
		return false
	case s.failureRate >= 1:
		return true
	default:
		return rand.Float64() < s.failureRate
	}
}

// transactionID joins the gateway tag, a random component and the unix time.
func (s simulator) transactionID(ts time.Time) string {
	unique := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s_%d", s.tag, unique, ts.Unix())
}

func (s simulator) fail(outcome model.PaymentOutcome, reason string) model.PaymentOutcome {
	outcome.Status = model.PaymentError
	outcome.Error = reason
	outcome.Timestamp = s.now().UTC()

	s.logger.Warn().
		Int64("user_id", outcome.UserID).
		Str("amount", outcome.Amount.StringFixed(2)).
		Str("reason", reason).
		Msg("charge failed")

	return outcome
}
