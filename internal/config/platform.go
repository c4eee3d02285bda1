package config

import "time"

// Platform is the trade platform HTTP API (offers, escrow, bans,
// provenance checks, partner messages).
type Platform struct {
	BaseURL      string        `env:"PLATFORM_BASE_URL,notEmpty" validate:"url"`
	APIKey       string        `env:"PLATFORM_API_KEY,notEmpty" json:"-"`
	PollInterval time.Duration `env:"PLATFORM_POLL_INTERVAL" envDefault:"5s"`
	Timeout      time.Duration `env:"PLATFORM_TIMEOUT" envDefault:"10s"`
}
