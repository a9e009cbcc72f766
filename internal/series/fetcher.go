// Package series fetches price history for charting.
package series

import (
	"context"
	"strings"
	"sync"

	"PaperTrader/internal/model"

	"go.uber.org/zap"
)

// Source fetches a price series from the service.
type Source interface {
	FetchSeries(ctx context.Context, symbol, rng, interval string) (*model.Series, error)
}

// Fetcher holds the current symbol/period selection and the series last
// fetched for it.
type Fetcher struct {
	src    Source
	logger *zap.Logger

	mu      sync.Mutex
	symbol  string
	period  string
	series  *model.Series
	lastErr error
}

// NewFetcher creates a Fetcher with the default period selected.
func NewFetcher(src Source, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{src: src, logger: logger, period: DefaultPeriod}
}

// Series returns the held series, nil before the first successful fetch.
func (f *Fetcher) Series() *model.Series {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.series
}

// Selection returns the current symbol and period label.
func (f *Fetcher) Selection() (symbol, period string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.symbol, f.period
}

// Err returns the error of the last fetch, if it failed.
func (f *Fetcher) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// SelectPeriod changes the period used by later fetches without fetching.
func (f *Fetcher) SelectPeriod(period string) error {
	if _, err := Lookup(period); err != nil {
		return err
	}
	f.mu.Lock()
	f.period = period
	f.mu.Unlock()
	return nil
}

// SetSymbol changes the symbol and fetches with the current period.
func (f *Fetcher) SetSymbol(ctx context.Context, symbol string) (*model.Series, error) {
	_, period := f.Selection()
	return f.SetSymbolOrPeriod(ctx, symbol, period)
}

// SetPeriod changes the period and fetches the current symbol.
func (f *Fetcher) SetPeriod(ctx context.Context, period string) (*model.Series, error) {
	symbol, _ := f.Selection()
	return f.SetSymbolOrPeriod(ctx, symbol, period)
}

// SetSymbolOrPeriod records the selection and fetches the matching series.
//
// An empty symbol is the idle state: nothing is fetched and no error is
// returned. A failed fetch keeps the previously held series.
func (f *Fetcher) SetSymbolOrPeriod(ctx context.Context, symbol, period string) (*model.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	q, err := Lookup(period)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.symbol, f.period = symbol, period
	f.mu.Unlock()

	if symbol == "" {
		return nil, nil
	}

	log := f.logger.With(
		zap.String("symbol", symbol),
		zap.String("period", period),
		zap.String("range", q.Range),
		zap.String("interval", q.Interval),
	)
	s, err := f.src.FetchSeries(ctx, symbol, q.Range, q.Interval)
	if err == nil && s == nil {
		err = model.ErrEmptyResponse
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastErr = err
	if err != nil {
		log.Warn("series fetch failed", zap.Error(err))
		return nil, err
	}
	s.Symbol = symbol
	s.Period = period
	f.series = s
	log.Debug("series fetched", zap.Int("points", s.Len()))
	return s, nil
}
