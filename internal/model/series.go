package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the timestamp format the service uses for series labels.
const DateLayout = "2006-01-02 15:04:05"

// SeriesInfo is the optional descriptive metadata returned with a series.
type SeriesInfo struct {
	LongName           string              `json:"longName"`
	CurrentPrice       decimal.NullDecimal `json:"currentPrice"`
	RegularMarketPrice decimal.NullDecimal `json:"regularMarketPrice"`
}

// Series holds index-aligned dates and prices for one symbol and period.
type Series struct {
	Symbol   string
	Period   string
	Range    string
	Interval string
	Dates    []string
	Prices   []decimal.Decimal
	Info     *SeriesInfo
}

// Len returns the number of points.
func (s *Series) Len() int { return len(s.Prices) }

// Name returns the display name, falling back to the symbol.
func (s *Series) Name() string {
	if s.Info != nil && s.Info.LongName != "" {
		return s.Info.LongName
	}
	return s.Symbol
}

// DisplayPrice returns the quoted price to show next to the chart:
// currentPrice, then regularMarketPrice, then the last price of the series.
func (s *Series) DisplayPrice() (decimal.Decimal, bool) {
	if s.Info != nil {
		if s.Info.CurrentPrice.Valid {
			return s.Info.CurrentPrice.Decimal, true
		}
		if s.Info.RegularMarketPrice.Valid {
			return s.Info.RegularMarketPrice.Decimal, true
		}
	}
	if len(s.Prices) > 0 {
		return s.Prices[len(s.Prices)-1], true
	}
	return decimal.Zero, false
}

// Floats returns the prices as float64 for indicator math.
func (s *Series) Floats() []float64 {
	out := make([]float64, len(s.Prices))
	for i, p := range s.Prices {
		out[i] = p.InexactFloat64()
	}
	return out
}

// Time parses the i-th date label. Labels that are not timestamps return false.
func (s *Series) Time(i int) (time.Time, bool) {
	if i < 0 || i >= len(s.Dates) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s.Dates[i])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
