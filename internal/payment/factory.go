package payment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KhashayarRezaei/bookverse/internal/config"

	"github.com/rs/zerolog"
)

// ErrEmptyMethod is returned when no payment method was supplied.
var ErrEmptyMethod = errors.New("Payment method cannot be empty")

// UnsupportedMethodError is returned for a method name that matches no gateway.
// Method holds the caller's input as received, before normalisation.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("Unsupported payment method: %s", e.Method)
}

// Factory maps payment method names to gateway instances. It holds only
// immutable configuration and is safe for concurrent use.
type Factory struct {
	stripe config.GatewayConfig
	paypal config.GatewayConfig
	logger zerolog.Logger
}

// NewFactory creates a gateway factory, checking that each gateway has credentials.
func NewFactory(cfg config.PaymentConfig, logger zerolog.Logger) (*Factory, error) {
	if cfg.Stripe.APIKey == "" {
		return nil, fmt.Errorf("stripe API key is required")
	}
	if cfg.PayPal.APIKey == "" || cfg.PayPal.APISecret == "" {
		return nil, fmt.Errorf("paypal client id and secret are required")
	}

	return &Factory{
		stripe: cfg.Stripe,
		paypal: cfg.PayPal,
		logger: logger.With().Str("component", "payment-factory").Logger(),
	}, nil
}

// Methods lists the supported payment method names.
func (f *Factory) Methods() []string {
	return []string{MethodStripe, MethodPayPal}
}

// Create returns the gateway for method. Matching ignores surrounding
// whitespace and case.
func (f *Factory) Create(method string) (Gateway, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}

	switch strings.ToLower(strings.TrimSpace(method)) {
	case MethodStripe:
		return NewStripeGateway(f.stripe, f.logger), nil
	case MethodPayPal:
		return NewPayPalGateway(f.paypal, f.logger), nil
	default:
		f.logger.Debug().Str("method", method).Msg("unsupported payment method")
		return nil, &UnsupportedMethodError{Method: method}
	}
}
