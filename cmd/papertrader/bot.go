package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PaperTrader/internal/notifier"
	"PaperTrader/internal/recorder"
	"PaperTrader/internal/scheduler"
	"PaperTrader/internal/series"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type botCmd struct {
	runOnStart bool
}

func (*botCmd) Name() string     { return "bot" }
func (*botCmd) Synopsis() string { return "runs the Telegram bot and scheduled reports" }
func (*botCmd) Usage() string {
	return `papertrader bot [-run-on-start]

Serves trading and chart commands over Telegram and sends scheduled
portfolio and watchlist reports. Runs until SIGINT or SIGTERM.
`
}

func (c *botCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "send a portfolio report on startup")
}

func (c *botCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	a, err := newApp(cfg, true)
	if err != nil {
		log.Fatalf("[FATAL] init: %v", err)
	}
	logger := a.logger
	defer logger.Sync()
	logger.Info("PaperTrader starting", zap.String("service", cfg.Service.BaseURL))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rec := recorder.Open(ctx, cfg.Database.URL, cfg.Database.SQLitePath, logger.Named("recorder"))
	defer rec.Close()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger.Named("telegram"))

	sched := scheduler.NewScheduler(ctx, a.session, a.series, tn, rec, logger.Named("scheduler"))
	sched.Format = a.format
	sched.Initial = cfg.Portfolio.Initial()
	sched.Watchlist = cfg.Chart.Watchlist
	sched.Watch = series.NewFetcher(a.client, logger.Named("watchlist"))
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.WatchlistCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	logger.Info("telegram polling started")

	if c.runOnStart {
		logger.Info("run-on-start enabled, sending portfolio report now")
		go sched.RunPortfolioNow()
	}

	logger.Info("PaperTrader is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
	return subcommands.ExitSuccess
}
