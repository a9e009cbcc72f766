package main

import (
	"flag"
	"fmt"
	"os"

	"PaperTrader/internal/client"
	"PaperTrader/internal/config"
	"PaperTrader/internal/logging"
	"PaperTrader/internal/notifier"
	"PaperTrader/internal/portfolio"
	"PaperTrader/internal/series"

	"go.uber.org/zap"
)

var configPath = flag.String("config", "", "Path to the YAML config file (default $CONFIG_PATH or configs/config.yaml)")

// app holds the components shared by all commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *client.Client
	session *portfolio.Session
	series  *series.Fetcher
	format  notifier.Formatter
}

func loadConfig() (*config.Config, error) {
	p := *configPath
	if p == "" {
		p = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			p = v
		}
	}
	cfg, err := config.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newApp(cfg *config.Config, html bool) (*app, error) {
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	c := client.New(cfg.Service.BaseURL, cfg.Service.Timeout, cfg.Proxy, logger.Named("client"))
	sf := series.NewFetcher(c, logger.Named("series"))
	if err := sf.SelectPeriod(cfg.Chart.DefaultPeriod); err != nil {
		return nil, fmt.Errorf("chart.default_period: %w", err)
	}
	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  c,
		session: portfolio.NewSession(c, portfolio.StaticToken(cfg.Service.Token), logger.Named("portfolio")),
		series:  sf,
		format:  notifier.Formatter{Currency: cfg.Portfolio.Currency, HTML: html},
	}, nil
}

// setup loads and validates the config and builds a terminal app.
func setup() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return newApp(cfg, false)
}
