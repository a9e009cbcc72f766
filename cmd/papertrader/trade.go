package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"PaperTrader/internal/model"

	"github.com/google/subcommands"
)

type tradeCmd struct {
	action string
	symbol string
	shares int64
}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "buys or sells shares of a symbol" }
func (*tradeCmd) Usage() string {
	return `papertrader trade -action buy|sell -symbol <SYMBOL> -shares <N>

Submits a trade to the trading service, prints the executed fill, then
refreshes and prints the account.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.action, "action", "buy", "buy or sell")
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol, e.g. AAPL")
	f.Int64Var(&c.shares, "shares", 0, "number of shares, must be positive")
}

func (c *tradeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.logger.Sync()

	conf, err := a.session.SubmitTrade(ctx, model.TradeRequest{
		Symbol: c.symbol,
		Shares: c.shares,
		Action: model.Action(c.action),
	})
	if conf == nil {
		fmt.Fprintln(os.Stderr, a.format.FormatError(err))
		if errors.Is(err, model.ErrInvalidTradeInput) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	fmt.Println(a.format.FormatTradeConfirmation(conf))
	if err != nil {
		fmt.Fprintln(os.Stderr, a.format.FormatError(err))
		return subcommands.ExitFailure
	}
	if acct := a.session.Account(); acct != nil {
		fmt.Println()
		fmt.Print(a.format.FormatPortfolio(acct, a.cfg.Portfolio.Initial()))
	}
	return subcommands.ExitSuccess
}
