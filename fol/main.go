// Command fol keeps a portfolio ledger: trades, prices and alert rules, and
// reports positions, profit and loss, and fired alerts.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/folio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("fol")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)
	cmd.SetFlags(flag.CommandLine)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(int(commander.Execute(ctx)))
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	symbol := predict.Something
	offline := map[string]complete.Predictor{"offline": predict.Nothing}
	trade := map[string]complete.Predictor{
		"d": predict.Something, "s": symbol, "b": predict.Something,
		"q": predict.Something, "p": predict.Something, "fee": predict.Something,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"lang":     predict.Set{"en", "ja"},
			"currency": predict.Something,
			"raw":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"master": {Flags: map[string]complete.Predictor{
				"s": symbol, "name": predict.Something, "market": predict.Something, "sector": predict.Something,
			}},
			"buy":   {Flags: trade},
			"sell":  {Flags: trade},
			"price": {Flags: map[string]complete.Predictor{"d": predict.Something, "s": symbol, "p": predict.Something}},
			"alert": {Flags: map[string]complete.Predictor{
				"s": symbol, "target": predict.Something, "stop": predict.Something,
				"sigma": predict.Nothing, "trailing": predict.Something, "rm": predict.Nothing,
			}},
			"view":      {Flags: offline},
			"positions": {Flags: offline},
			"trades":    {Flags: offline},
			"masters":   {Flags: offline},
			"report": {Flags: map[string]complete.Predictor{
				"offline": predict.Nothing, "p": predict.Set{"monthly", "yearly"},
			}},
			"watch":  {Flags: map[string]complete.Predictor{"i": predict.Something, "offline": predict.Nothing}},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*.csv")}},
			"import": {Args: predict.Files("*.csv")},
			"topic":  {Args: predict.Set{"readme", "alerts", "csv", "config"}},
		},
	}
}
