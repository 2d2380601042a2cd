package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	RedisAddr         string        `env:"REDIS_ADDR,required"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,required"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`

	// Remote pricing backend; when unset the in-process engine prices
	// everything.
	PricingBaseURL string `env:"PRICING_BASE_URL"`
	PricingAPIKey  string `env:"PRICING_API_KEY"`

	// Artificial quote latency window, useful in demos and load tests to
	// provoke out-of-order responses. Zero disables it.
	QuoteLatencyMin time.Duration `env:"QUOTE_LATENCY_MIN" envDefault:"0"`
	QuoteLatencyMax time.Duration `env:"QUOTE_LATENCY_MAX" envDefault:"0"`

	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	AdminChannelID int64  `env:"ADMIN_CHANNEL_ID"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.QuoteLatencyMax < cfg.QuoteLatencyMin {
		return nil, fmt.Errorf("QUOTE_LATENCY_MAX must not be below QUOTE_LATENCY_MIN")
	}

	return &cfg, nil
}
