package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/google/subcommands"
)

// tradeCmd records a buy or a sell depending on side.
type tradeCmd struct {
	side     folio.Side
	date     string
	symbol   string
	broker   string
	quantity string
	price    string
	fee      string
}

func (c *tradeCmd) Name() string {
	if c.side == folio.Sell {
		return "sell"
	}
	return "buy"
}

func (c *tradeCmd) Synopsis() string {
	if c.side == folio.Sell {
		return "record a sale of shares"
	}
	return "record a purchase of shares"
}

func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`fol %s -s <symbol> -q <quantity> -p <price> [-fee <fee>] [-b <broker>] [-d <date>]

  Appends a %s trade to the ledger. Trades are never edited afterwards.
  Selling more than the held quantity is recorded as is.
`, c.Name(), c.side)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Symbol")
	f.StringVar(&c.broker, "b", "", "Broker holding the position")
	f.StringVar(&c.quantity, "q", "", "Number of shares, must be positive")
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.fee, "fee", "", "Total fee of the trade")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := folio.ParseTrade(c.date, c.symbol, c.broker, string(c.side), c.quantity, c.price, c.fee)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(ctx, func(s *session) error {
		s.ledger.AppendTrade(t)
		fmt.Fprintf(stdout, "Recorded %s\n", t)
		return nil
	})
}
