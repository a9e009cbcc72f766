package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"PaperTrader/internal/calculator"
	"PaperTrader/internal/series"

	"github.com/google/subcommands"
)

type chartCmd struct {
	symbol string
	period string
	points bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "fetches the price history of a symbol" }
func (*chartCmd) Usage() string {
	return `papertrader chart -symbol <SYMBOL> [-period <PERIOD>] [-points]

Fetches the price series of a symbol for a period and prints a summary.
With -points, every (date, price) pair is printed as well.

Periods: ` + strings.Join(series.Labels, ", ") + `
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol, e.g. AAPL")
	f.StringVar(&c.period, "period", "", "period label (default chart.default_period)")
	f.BoolVar(&c.points, "points", false, "print every point of the series")
}

func (c *chartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.logger.Sync()

	period := c.period
	if period == "" {
		period = a.cfg.Chart.DefaultPeriod
	}

	s, err := a.series.SetSymbolOrPeriod(ctx, c.symbol, period)
	if err != nil {
		fmt.Fprintln(os.Stderr, a.format.FormatError(err))
		return subcommands.ExitFailure
	}
	if s == nil {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required")
		return subcommands.ExitUsageError
	}
	sum, _ := calculator.Summarize(s)
	fmt.Print(a.format.FormatSeries(s, sum))
	if c.points {
		for i := range s.Dates {
			fmt.Printf("%s\t%s\n", s.Dates[i], s.Prices[i].StringFixed(2))
		}
	}
	return subcommands.ExitSuccess
}
