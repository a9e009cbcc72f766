package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "shows account value, cash and holdings" }
func (*portfolioCmd) Usage() string {
	return `papertrader portfolio

Fetches the account snapshot from the trading service and prints the
account summary and holdings. The bearer token is read from service.token
or PAPERTRADER_TOKEN.
`
}

func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (*portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.logger.Sync()

	acct, err := a.session.Refresh(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, a.format.FormatError(err))
		return subcommands.ExitFailure
	}
	fmt.Print(a.format.FormatPortfolio(acct, a.cfg.Portfolio.Initial()))
	return subcommands.ExitSuccess
}
