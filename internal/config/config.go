package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Engine   Engine
	Bands    Bands
	Platform Platform
	Pricing  Pricing
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Server   Server
}

type Server struct {
	ListenAddress       string `env:"SERVER_LISTEN_ADDRESS" envDefault:":8080"`
	MetricListenAddress string `env:"METRIC_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeListenAddress  string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
}

// Load reads the environment and fails on malformed identifiers or
// exception lists before anything starts serving offers.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("validator.Struct: %w", err)
	}

	return config, nil
}
