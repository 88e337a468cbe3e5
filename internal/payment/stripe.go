package payment

import (
	"context"

	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MethodStripe is the payment method name selecting the Stripe-like gateway.
const MethodStripe = "stripe"

// StripeGateway is the simulated Stripe-like gateway.
type StripeGateway struct {
	apiKey   string
	endpoint string
	sim      simulator
}

// NewStripeGateway creates a Stripe-like gateway from explicit credentials.
func NewStripeGateway(cfg config.GatewayConfig, logger zerolog.Logger) *StripeGateway {
	return &StripeGateway{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		sim:      newSimulator(MethodStripe, cfg, logger),
	}
}

// Name returns the gateway tag.
func (g *StripeGateway) Name() string {
	return MethodStripe
}

// Charge charges the payer the given amount.
func (g *StripeGateway) Charge(ctx context.Context, payerID int64, amount decimal.Decimal) model.PaymentOutcome {
	return g.sim.charge(ctx, payerID, amount)
}
