package domain

import "context"

const (
	DefaultGatewayTitle       = "Stripe"
	DefaultGatewayDescription = "Pay with Stripe"
)

// MerchantConfig is loaded from the settings store once per checkout attempt.
type MerchantConfig struct {
	Enabled     bool
	Title       string
	Description string
	APIKey      string
	SiteName    string
}

type SettingsRepository interface {
	GetOption(ctx context.Context, key string) (string, error)
	SetOption(ctx context.Context, key, value string) error
}
