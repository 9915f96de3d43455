package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type alertCmd struct {
	symbol   string
	target   string
	stop     string
	sigma    bool
	trailing string
	remove   bool
}

func (*alertCmd) Name() string     { return "alert" }
func (*alertCmd) Synopsis() string { return "set the alert rules of a symbol" }
func (*alertCmd) Usage() string {
	return `fol alert -s <symbol> [-target <price>] [-stop <price>] [-sigma] [-trailing <percent>]
fol alert -s <symbol> -rm

  Replaces the alert rules of a symbol. Empty or zero thresholds are unset.
  The high-water mark of the trailing stop is kept across rule changes.
  Alerts are evaluated by every view command.
`
}

func (c *alertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol")
	f.StringVar(&c.target, "target", "", "Notify when the price reaches or exceeds this level")
	f.StringVar(&c.stop, "stop", "", "Notify when the price falls to or below this level")
	f.BoolVar(&c.sigma, "sigma", false, "Notify when the price leaves the 3σ band of the last 20 observations")
	f.StringVar(&c.trailing, "trailing", "", "Trailing stop, in percent below the highest price seen")
	f.BoolVar(&c.remove, "rm", false, "Remove all the alert state of the symbol")
}

func (c *alertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, err := folio.ParseSymbol(c.symbol)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.remove {
		return mutate(ctx, func(s *session) error {
			delete(s.ledger.Alerts, symbol)
			fmt.Fprintf(stdout, "Removed alerts of %s\n", symbol)
			return nil
		})
	}

	rules, err := folio.ParseAlert(c.target, c.stop, c.sigma, c.trailing)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(ctx, func(s *session) error {
		s.ledger.SetAlert(symbol, rules)
		fmt.Fprintf(stdout, "Saved alerts of %s\n", symbol)
		return nil
	})
}
