package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole ledger as CSV" }
func (*exportCmd) Usage() string {
	return `fol export [-o <file>]

  Writes masters, trades, prices and alerts into a single CSV file, by
  default portfolio-export-<today>.csv. Use -o - for the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, false, func(s *session) error {
		if c.output == "-" {
			return folio.EncodeCSV(stdout, s.ledger)
		}
		name := c.output
		if name == "" {
			name = folio.ExportFilename(date.Today())
		}
		out, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := folio.EncodeCSV(out, s.ledger); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported ledger to %s\n", name)
		return nil
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the whole ledger with a CSV export" }
func (*importCmd) Usage() string {
	return `fol import <file>

  Replaces masters, trades, prices and alerts with the content of a CSV file
  made by export. Columns are matched by header name. A file without data
  rows changes nothing, and a file with an invalid row is rejected as a whole.
`
}

func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	return mutate(ctx, func(s *session) error {
		in, err := os.Open(name)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := s.ledger.ImportCSV(in); err != nil {
			return fmt.Errorf("cannot import %q: %w", name, err)
		}
		fmt.Fprintf(stdout, "Imported %s\n", name)
		return nil
	})
}
