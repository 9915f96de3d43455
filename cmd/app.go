// Package cmd implements the fol CLI application to keep a portfolio ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/locale"
	"github.com/etnz/folio/quote"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&masterCmd{}, "ledger")
	c.Register(&tradeCmd{side: folio.Buy}, "ledger")
	c.Register(&tradeCmd{side: folio.Sell}, "ledger")
	c.Register(&priceCmd{}, "ledger")
	c.Register(&alertCmd{}, "ledger")

	for _, v := range viewCmds() {
		c.Register(v, "views")
	}
	c.Register(&watchCmd{}, "views")

	c.Register(&exportCmd{}, "csv")
	c.Register(&importCmd{}, "csv")

	c.Register(&topicCmd{}, "help")
}

// Options are the global flags of the application.
type Options struct {
	ConfigFile string
	Language   string
	Currency   string
	Raw        bool // print markdown without terminal styling
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var (
	options Options

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetFlags declares the global flags on f.
func SetFlags(f *flag.FlagSet) {
	f.StringVar(&options.ConfigFile, "config", "", "Path to the configuration file. Defaults to $FOLIO_CONFIG or folio/config.yaml in the user config dir.")
	f.StringVar(&options.Language, "lang", "", "Display language (en, ja). Overrides the configuration.")
	f.StringVar(&options.Currency, "currency", "", "Display currency, like USD or JPY. Overrides the configuration.")
	f.BoolVar(&options.Raw, "raw", false, "Print raw markdown.")
}

// session is the ledger opened by a command, with the configured services.
type session struct {
	cfg    *config.Config
	store  store.Closer
	ledger *folio.Ledger
}

// openSession loads the configuration, sets up logging and loads the ledger.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		return nil, err
	}
	if options.Language != "" {
		cfg.Language = options.Language
	}
	if options.Currency != "" {
		cfg.Currency = options.Currency
	}
	setupLogging(cfg.LogLevel)

	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, store: s, ledger: folio.LoadLedger(ctx, s)}, nil
}

func setupLogging(level string) {
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using warning")
		lvl = logrus.WarnLevel
	}
	logrus.SetLevel(lvl)
}

// save writes the whole ledger back.
func (s *session) save(ctx context.Context) error {
	return folio.SaveLedger(ctx, s.store, s.ledger)
}

func (s *session) Close() error {
	return s.store.Close()
}

// provider returns the price provider: the configured quote service backed
// by the manual observations, or the manual observations alone.
func (s *session) provider(offline bool) folio.PriceProvider {
	manual := folio.ManualPriceProvider{Ledger: s.ledger}
	if offline || s.cfg.Quote.URL == "" {
		return manual
	}
	return folio.FallbackProvider{
		Primary:   quote.New(s.cfg.Quote.URL, s.cfg.Quote.Path),
		Secondary: manual,
	}
}

func (s *session) renderer() *renderer.Renderer {
	return renderer.New(locale.New(s.cfg.Language), s.cfg.Currency)
}

// run opens a session, calls f and closes the session. If commit is true the
// ledger is saved after a successful f.
func run(ctx context.Context, commit bool, f func(*session) error) subcommands.ExitStatus {
	sess, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logrus.WithError(err).Warn("cannot close store")
		}
	}()

	if err := f(sess); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, folio.ErrInvalidInput) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	if !commit {
		return subcommands.ExitSuccess
	}
	if err := sess.save(ctx); err != nil {
		fmt.Fprintf(stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// mutate runs f and saves the ledger like run, after evaluating the alerts on
// the manual prices. Every recorded change is an evaluation step of the
// trailing stops. Fired alerts are printed.
func mutate(ctx context.Context, f func(*session) error) subcommands.ExitStatus {
	return run(ctx, true, func(s *session) error {
		if err := f(s); err != nil {
			return err
		}
		v := s.ledger.Refresh(ctx, s.provider(true))
		if len(v.Notifications) > 0 {
			printMarkdown(s.renderer().Notifications(v.Notifications))
		}
		return nil
	})
}
