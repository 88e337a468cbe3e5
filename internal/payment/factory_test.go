package payment

import (
	"errors"
	"testing"

	"github.com/KhashayarRezaei/bookverse/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		Stripe: config.GatewayConfig{APIKey: "sk_test"},
		PayPal: config.GatewayConfig{APIKey: "client", APISecret: "secret"},
	}
}

func TestNewFactory(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *config.PaymentConfig)
		errMatch string
	}{
		{
			name:   "Valid credentials",
			mutate: func(c *config.PaymentConfig) {},
		},
		{
			name:     "Missing stripe key",
			mutate:   func(c *config.PaymentConfig) { c.Stripe.APIKey = "" },
			errMatch: "stripe API key is required",
		},
		{
			name:     "Missing paypal secret",
			mutate:   func(c *config.PaymentConfig) { c.PayPal.APISecret = "" },
			errMatch: "paypal client id and secret are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testPaymentConfig()
			tt.mutate(&cfg)

			f, err := NewFactory(cfg, zerolog.Nop())
			if tt.errMatch != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMatch)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestFactory_Create(t *testing.T) {
	f, err := NewFactory(testPaymentConfig(), zerolog.Nop())
	require.NoError(t, err)

	tests := []struct {
		name        string
		method      string
		wantGateway string
		wantErr     string
	}{
		{name: "Stripe", method: "stripe", wantGateway: "stripe"},
		{name: "Stripe upper case", method: "STRIPE", wantGateway: "stripe"},
		{name: "Stripe with whitespace", method: "  stripe ", wantGateway: "stripe"},
		{name: "PayPal", method: "paypal", wantGateway: "paypal"},
		{name: "PayPal mixed case", method: "PayPal", wantGateway: "paypal"},
		{name: "Empty", method: "", wantErr: "Payment method cannot be empty"},
		{name: "Unsupported", method: "credit_card", wantErr: "Unsupported payment method: credit_card"},
		{name: "Unsupported keeps input verbatim", method: " Bitcoin ", wantErr: "Unsupported payment method:  Bitcoin "},
		{name: "Whitespace only", method: "   ", wantErr: "Unsupported payment method:    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, err := f.Create(tt.method)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Nil(t, gw)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantGateway, gw.Name())
		})
	}
}

func TestFactory_Create_ErrorKinds(t *testing.T) {
	f, err := NewFactory(testPaymentConfig(), zerolog.Nop())
	require.NoError(t, err)

	_, err = f.Create("")
	assert.ErrorIs(t, err, ErrEmptyMethod)

	_, err = f.Create("cash")
	var unsupported *UnsupportedMethodError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "cash", unsupported.Method)
}

func TestFactory_Create_ReturnsConcreteVariants(t *testing.T) {
	f, err := NewFactory(testPaymentConfig(), zerolog.Nop())
	require.NoError(t, err)

	gw, err := f.Create("stripe")
	require.NoError(t, err)
	assert.IsType(t, &StripeGateway{}, gw)

	gw, err = f.Create("paypal")
	require.NoError(t, err)
	assert.IsType(t, &PayPalGateway{}, gw)

	assert.Equal(t, []string{"stripe", "paypal"}, f.Methods())
}
