package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type masterCmd struct {
	symbol string
	name   string
	market string
	sector string
}

func (*masterCmd) Name() string     { return "master" }
func (*masterCmd) Synopsis() string { return "set the descriptive metadata of a symbol" }
func (*masterCmd) Usage() string {
	return `fol master -s <symbol> [-name <name>] [-market <market>] [-sector <sector>]

  Inserts or replaces the master record of a symbol. Missing fields are
  displayed as "-".
`
}

func (c *masterCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol")
	f.StringVar(&c.name, "name", "", "Instrument name")
	f.StringVar(&c.market, "market", "", "Market the instrument trades on")
	f.StringVar(&c.sector, "sector", "", "Sector of the instrument")
}

func (c *masterCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := folio.ParseMaster(c.symbol, c.name, c.market, c.sector)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(ctx, func(s *session) error {
		s.ledger.SetMaster(m)
		fmt.Fprintf(stdout, "Saved master %s\n", m.Symbol)
		return nil
	})
}
