package payment

import (
	"context"

	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MethodPayPal is the payment method name selecting the PayPal-like gateway.
const MethodPayPal = "paypal"

// PayPalGateway is the simulated PayPal-like gateway.
type PayPalGateway struct {
	clientID     string
	clientSecret string
	endpoint     string
	sim          simulator
}

// NewPayPalGateway creates a PayPal-like gateway from explicit credentials.
func NewPayPalGateway(cfg config.GatewayConfig, logger zerolog.Logger) *PayPalGateway {
	return &PayPalGateway{
		clientID:     cfg.APIKey,
		clientSecret: cfg.APISecret,
		endpoint:     cfg.Endpoint,
		sim:          newSimulator(MethodPayPal, cfg, logger),
	}
}

// Name returns the gateway tag.
func (g *PayPalGateway) Name() string {
	return MethodPayPal
}

// Charge charges the payer the given amount.
func (g *PayPalGateway) Charge(ctx context.Context, payerID int64, amount decimal.Decimal) model.PaymentOutcome {
	return g.sim.charge(ctx, payerID, amount)
}
