package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"PaperTrader/internal/calculator"
	"PaperTrader/internal/model"
	"PaperTrader/internal/notifier"
	"PaperTrader/internal/portfolio"
	"PaperTrader/internal/recorder"
	"PaperTrader/internal/series"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Sender delivers a formatted message to the user.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the session and the series fetcher from cron ticks and
// chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Session   *portfolio.Session
	Series    *series.Fetcher
	Watch     *series.Fetcher // watchlist reports, kept apart from the chat selection
	Sender    Sender
	Recorder  recorder.Recorder
	Format    notifier.Formatter
	Initial   decimal.Decimal
	Watchlist []string
	Logger    *zap.Logger
	Ctx       context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sess *portfolio.Session, sf *series.Fetcher, sender Sender, rec recorder.Recorder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Session:  sess,
		Series:   sf,
		Sender:   sender,
		Recorder: rec,
		Format:   notifier.Formatter{Currency: "USD", HTML: true},
		Initial:  decimal.NewFromInt(1000000),
		Logger:   logger,
		Ctx:      ctx,
		now:      time.Now,
	}
}

// RegisterAll registers the portfolio report and watchlist tasks.
func (s *Scheduler) RegisterAll(refreshCron, watchlistCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.portfolioTask); err != nil {
		return fmt.Errorf("register portfolio task: %w", err)
	}
	if len(s.Watchlist) > 0 && s.Watch != nil {
		if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
			return fmt.Errorf("register watchlist task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunPortfolioNow sends the portfolio report immediately.
func (s *Scheduler) RunPortfolioNow() {
	s.portfolioTask()
}

func (s *Scheduler) portfolioTask() {
	s.Logger.Info("running portfolio task")
	s.trySend(s.portfolioReport(s.Ctx))
}

func (s *Scheduler) watchlistTask() {
	s.Logger.Info("running watchlist task", zap.Strings("symbols", s.Watchlist))
	var parts []string
	for _, sym := range s.Watchlist {
		parts = append(parts, s.chartReport(s.Ctx, s.Watch, sym, "1m"))
	}
	s.trySend(strings.Join(parts, "\n"))
}

// portfolioReport refreshes the account and formats it.
func (s *Scheduler) portfolioReport(ctx context.Context) string {
	acct, err := s.Session.Refresh(ctx)
	if err != nil {
		return s.Format.FormatError(err)
	}
	s.recordAccount(acct)
	return s.Format.FormatPortfolio(acct, s.Initial)
}

// chartReport fetches a series and formats it. A failed fetch is reported;
// the previously held series is kept by the fetcher.
func (s *Scheduler) chartReport(ctx context.Context, f *series.Fetcher, symbol, period string) string {
	ser, err := f.SetSymbolOrPeriod(ctx, symbol, period)
	if err != nil {
		return s.Format.FormatError(err)
	}
	if ser == nil {
		return "Enter a stock symbol, e.g. /chart AAPL 1y"
	}
	sum, err := calculator.Summarize(ser)
	if err != nil {
		s.Logger.Debug("no chart summary", zap.String("symbol", ser.Symbol), zap.Error(err))
		sum = nil
	}
	return s.Format.FormatSeries(ser, sum)
}

// trade submits a trade. The session refreshes before returning, so the
// reply carries the confirmation and the refreshed holdings.
func (s *Scheduler) trade(ctx context.Context, action model.Action, args []string) string {
	if len(args) != 2 {
		return s.Format.FormatError(model.ErrInvalidTradeInput)
	}
	shares, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return s.Format.FormatError(model.ErrInvalidTradeInput)
	}
	conf, err := s.Session.SubmitTrade(ctx, model.TradeRequest{Symbol: args[0], Shares: shares, Action: action})
	if conf == nil {
		return s.Format.FormatError(err)
	}
	if rerr := s.Recorder.RecordTrade(&recorder.TradeEvent{Confirmation: conf, At: s.now()}); rerr != nil {
		s.Logger.Error("record trade", zap.Error(rerr))
	}
	reply := s.Format.FormatTradeConfirmation(conf)
	if err != nil {
		return reply + "\n\n" + s.Format.FormatError(err)
	}
	acct := s.Session.Account()
	if acct == nil {
		return reply
	}
	s.recordAccount(acct)
	return reply + "\n\n" + s.Format.FormatPortfolio(acct, s.Initial)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return s.Format.FormatHelp()
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	// Telegram appends the bot name in groups: /chart@my_bot
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "/portfolio", "/refresh":
		return s.portfolioReport(ctx)
	case "/buy":
		return s.trade(ctx, model.ActionBuy, args)
	case "/sell":
		return s.trade(ctx, model.ActionSell, args)
	case "/chart":
		if len(args) == 0 {
			return s.Format.FormatHelp()
		}
		_, period := s.Series.Selection()
		if len(args) > 1 {
			period = strings.ToLower(args[1])
		}
		return s.chartReport(ctx, s.Series, args[0], period)
	case "/period":
		if len(args) != 1 {
			return s.Format.FormatHelp()
		}
		symbol, _ := s.Series.Selection()
		return s.chartReport(ctx, s.Series, symbol, strings.ToLower(args[0]))
	default:
		return s.Format.FormatHelp()
	}
}

func (s *Scheduler) recordAccount(acct *model.Account) {
	if err := s.Recorder.RecordAccount(&recorder.AccountSnapshot{Account: acct, At: s.now()}); err != nil {
		s.Logger.Error("record account", zap.Error(err))
	}
}

func (s *Scheduler) trySend(text string) {
	if text == "" || s.Sender == nil {
		return
	}
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil && !errors.Is(err, context.Canceled) {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
