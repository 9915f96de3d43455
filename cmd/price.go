package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/google/subcommands"
)

type priceCmd struct {
	date   string
	symbol string
	price  string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record a manual price observation" }
func (*priceCmd) Usage() string {
	return `fol price -s <symbol> -p <price> [-d <date>]

  Records the price of a symbol on a date. The latest observation is the
  current price when no quote service is configured, and the last 20
  observations feed the 3σ bands.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Observation date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Symbol")
	f.StringVar(&c.price, "p", "", "Observed price")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, err := folio.ParseSymbol(c.symbol)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	obs, err := folio.ParsePrice(c.date, c.price)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(ctx, func(s *session) error {
		s.ledger.AppendPrice(symbol, obs)
		fmt.Fprintf(stdout, "Recorded %s %s on %s\n", symbol, obs.Price, obs.Date)
		return nil
	})
}
