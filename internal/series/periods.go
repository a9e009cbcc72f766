package series

import (
	"fmt"

	"PaperTrader/internal/model"
)

// Query is the concrete (range, interval) pair the service understands.
type Query struct {
	Range    string
	Interval string
}

// DefaultPeriod is selected before the user picks one.
const DefaultPeriod = "1d"

// Labels lists the period labels in display order.
var Labels = []string{"1d", "1w", "1m", "6m", "1y", "5y", "10y", "max"}

var periods = map[string]Query{
	"1d":  {Range: "1d", Interval: "5m"},
	"1w":  {Range: "5d", Interval: "15m"},
	"1m":  {Range: "1mo", Interval: "1d"},
	"6m":  {Range: "6mo", Interval: "1d"},
	"1y":  {Range: "1y", Interval: "1d"},
	"5y":  {Range: "5y", Interval: "1wk"},
	"10y": {Range: "10y", Interval: "1mo"},
	"max": {Range: "max", Interval: "1mo"},
}

// Lookup resolves a period label.
func Lookup(label string) (Query, error) {
	q, ok := periods[label]
	if !ok {
		return Query{}, fmt.Errorf("%w: %q", model.ErrUnknownPeriod, label)
	}
	return q, nil
}
