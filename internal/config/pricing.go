package config

import "time"

// Pricing is the external price-suggestion service used for items
// absent from the pricelist.
type Pricing struct {
	BaseURL string        `env:"PRICING_BASE_URL,notEmpty" validate:"url"`
	APIKey  string        `env:"PRICING_API_KEY" json:"-"`
	Timeout time.Duration `env:"PRICING_TIMEOUT" envDefault:"10s"`
	// RequestDelay is slept before each live lookup to respect the
	// service's rate limit.
	RequestDelay time.Duration `env:"PRICING_REQUEST_DELAY" envDefault:"1s"`
}
