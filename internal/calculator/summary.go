package calculator

import (
	"errors"

	"PaperTrader/internal/model"

	"github.com/shopspring/decimal"
)

const (
	smaPeriod = 20
	rsiPeriod = 14
)

// Summary describes a fetched series for a chart caption.
type Summary struct {
	First     decimal.Decimal
	Last      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Change    decimal.Decimal
	ChangePct decimal.Decimal
	Position  float64 // last price within [low, high]
	SMA       float64
	HasSMA    bool
	RSI       float64
}

// Summarize computes the chart summary of s.
func Summarize(s *model.Series) (*Summary, error) {
	if s == nil || s.Len() == 0 {
		return nil, errors.New("empty series")
	}
	high, low, err := CalculateRange(s.Prices)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		First: s.Prices[0],
		Last:  s.Prices[s.Len()-1],
		High:  high,
		Low:   low,
	}
	sum.Change = sum.Last.Sub(sum.First)
	if !sum.First.IsZero() {
		sum.ChangePct = sum.Change.Div(sum.First).Mul(decimal.NewFromInt(100))
	}

	floats := s.Floats()
	if pos, err := CalculatePosition(sum.Last.InexactFloat64(), high.InexactFloat64(), low.InexactFloat64()); err == nil {
		sum.Position = pos
	}
	if sma, err := CalculateSMA(floats, smaPeriod); err == nil {
		sum.SMA, sum.HasSMA = sma, true
	}
	if rsi, err := CalculateRSI(floats, rsiPeriod); err == nil {
		sum.RSI = rsi
	}
	return sum, nil
}
