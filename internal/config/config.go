package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Service configures the trading service connection.
type Service struct {
	BaseURL string        `yaml:"base_url" env:"PAPERTRADER_BASE_URL"`
	Token   string        `yaml:"token" env:"PAPERTRADER_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env:"PAPERTRADER_TIMEOUT"`
}

// Telegram configures the bot front end.
type Telegram struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

// Portfolio configures valuation and display. An explicit zero initial
// investment is kept; only an unset one gets the default.
type Portfolio struct {
	InitialInvestment decimal.NullDecimal `yaml:"initial_investment" env:"INITIAL_INVESTMENT"`
	Currency          string              `yaml:"currency" env:"CURRENCY"`
}

// Initial returns the configured initial investment.
func (p Portfolio) Initial() decimal.Decimal {
	return p.InitialInvestment.Decimal
}

// Chart configures the series fetcher.
type Chart struct {
	DefaultPeriod string   `yaml:"default_period" env:"CHART_PERIOD"`
	Watchlist     []string `yaml:"watchlist" env:"WATCHLIST" envSeparator:","`
}

// Schedule holds cron expressions (with seconds).
type Schedule struct {
	RefreshCron   string `yaml:"refresh_cron" env:"CRON_REFRESH"`
	WatchlistCron string `yaml:"watchlist_cron" env:"CRON_WATCHLIST"`
}

// Database selects the history journal backend.
type Database struct {
	URL        string `yaml:"url" env:"DATABASE_URL"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Config holds all application configuration.
type Config struct {
	Service   Service   `yaml:"service"`
	Telegram  Telegram  `yaml:"telegram"`
	Portfolio Portfolio `yaml:"portfolio"`
	Chart     Chart     `yaml:"chart"`
	Schedule  Schedule  `yaml:"schedule"`
	Database  Database  `yaml:"database"`
	Log       Log       `yaml:"log"`
	Proxy     string    `yaml:"proxy" env:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = "http://localhost:5000"
	}
	if c.Service.Timeout == 0 {
		c.Service.Timeout = 30 * time.Second
	}
	if !c.Portfolio.InitialInvestment.Valid {
		c.Portfolio.InitialInvestment = decimal.NewNullDecimal(decimal.NewFromInt(1000000))
	}
	if c.Portfolio.Currency == "" {
		c.Portfolio.Currency = "USD"
	}
	if c.Chart.DefaultPeriod == "" {
		c.Chart.DefaultPeriod = "1d"
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 0 22 * * 1-5"
	}
	if c.Schedule.WatchlistCron == "" {
		c.Schedule.WatchlistCron = "0 30 22 * * 1-5"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must not be negative")
	}
	if c.Portfolio.Initial().IsNegative() {
		return fmt.Errorf("portfolio.initial_investment must not be negative")
	}
	return nil
}

// ValidateBot checks the additional fields the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
