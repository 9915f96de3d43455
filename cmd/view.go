package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// viewCmd refreshes the ledger and prints a part of the dashboard.
//
// A refresh evaluates the alerts, which updates the trailing stops, so every
// view saves the ledger.
type viewCmd struct {
	name     string
	synopsis string
	render   func(r *renderer.Renderer, l *folio.Ledger, v folio.View) string

	offline bool
	period  string // report only
}

// viewCmds returns the view commands.
func viewCmds() []*viewCmd {
	return []*viewCmd{
		{name: "view", synopsis: "display the whole dashboard", render: (*renderer.Renderer).View},
		{name: "positions", synopsis: "display the valued positions and the fired alerts",
			render: func(r *renderer.Renderer, _ *folio.Ledger, v folio.View) string {
				return r.Summary(v) + r.Notifications(v.Notifications) + r.Positions(v.Holdings)
			}},
		{name: "trades", synopsis: "display the trades, most recent first",
			render: func(r *renderer.Renderer, l *folio.Ledger, _ folio.View) string { return r.Trades(l) }},
		{name: "masters", synopsis: "display the instrument masters",
			render: func(r *renderer.Renderer, l *folio.Ledger, _ folio.View) string { return r.Masters(l.Masters) }},
		{name: "report", synopsis: "display the monthly and yearly sales report",
			render: func(r *renderer.Renderer, _ *folio.Ledger, v folio.View) string { return r.Report(v.Report) }},
	}
}

func (c *viewCmd) Name() string     { return c.name }
func (c *viewCmd) Synopsis() string { return c.synopsis }
func (c *viewCmd) Usage() string {
	if c.name == "report" {
		return `fol report [-p monthly|yearly] [-offline]

  Displays the sell proceeds (quantity * price - fee) per month and per year.
`
	}
	return fmt.Sprintf(`fol %s [-offline]

  Refreshes the current prices, evaluates the alerts and displays the result.
`, c.name)
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Use the manual price observations only")
	if c.name == "report" {
		f.StringVar(&c.period, "p", "", "Only display this period (monthly or yearly)")
	}
}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var only *date.Period
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		only = &p
	}

	return run(ctx, true, func(s *session) error {
		v := s.ledger.Refresh(ctx, s.provider(c.offline))
		if only != nil {
			v.Report = keepPeriod(v.Report, *only)
		}
		printMarkdown(c.render(s.renderer(), s.ledger, v))
		return nil
	})
}

func keepPeriod(r folio.Report, p date.Period) folio.Report {
	if p == date.Monthly {
		r.Yearly = nil
	} else {
		r.Monthly = nil
	}
	return r
}
