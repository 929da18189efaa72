// Package config loads typed application configuration from the environment.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App is the root application configuration.
type App struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Server    Server
	DB        DB
	PriceFeed PriceFeed
	Ledger    Ledger
}

// Server configures the ledger HTTP server.
type Server struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"SERVER_PORT" default:"3000"`
}

// DB configures the ledger database connection.
type DB struct {
	Url string `envconfig:"DATABASE_URL"`
}

// PriceFeed configures the third-party price feed consumed by the catalog.
type PriceFeed struct {
	Url         string        `envconfig:"PRICE_FEED_URL" default:"https://interview.switcheo.com/prices.json"`
	HTTPTimeout time.Duration `envconfig:"PRICE_FEED_TIMEOUT" default:"10s"`
}

// Ledger configures the conversion-ledger API consumed by the swap workflow.
type Ledger struct {
	BaseUrl     string        `envconfig:"LEDGER_BASE_URL" default:"http://localhost:3000"`
	HTTPTimeout time.Duration `envconfig:"LEDGER_TIMEOUT" default:"10s"`
}

// Load reads configuration from the environment, optionally preloading a .env
// file. A missing .env file is not an error; system environment variables win.
func Load() (*App, error) {
	logger := slog.Default()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"server_host", cfg.Server.Host,
		"server_port", cfg.Server.Port,
		"price_feed_url", cfg.PriceFeed.Url,
		"ledger_base_url", cfg.Ledger.BaseUrl,
	)
	return &cfg, nil
}
