package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/store"
	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// settle is how long the store file must stay quiet before a refresh.
const settle = 200 * time.Millisecond

type watchCmd struct {
	interval time.Duration
	offline  bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-evaluate the alerts whenever the ledger changes" }
func (*watchCmd) Usage() string {
	return `fol watch [-i <interval>] [-offline]

  Evaluates the alerts, then again every time another fol command changes
  the ledger, and every interval if set. Fired alerts are printed. Needs a
  file or sqlite store. Stops on interrupt.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "i", 0, "Also refresh at this interval, like 5m. 0 to disable.")
	f.BoolVar(&c.offline, "offline", false, "Use the manual price observations only")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, false, func(s *session) error {
		target, err := watchTarget(s)
		if err != nil {
			return err
		}
		return c.watch(ctx, s, target)
	})
}

// watchTarget returns the file holding the ledger.
func watchTarget(s *session) (string, error) {
	switch st := s.store.(type) {
	case *store.File:
		return st.Path(folio.StorageKey), nil
	case *store.SQLite:
		return s.cfg.Store.Path, nil
	default:
		return "", fmt.Errorf("cannot watch a %s store, use %s or %s", s.cfg.Store.Kind, config.StoreFile, config.StoreSQLite)
	}
}

func (c *watchCmd) watch(ctx context.Context, s *session, target string) error {
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer watcher.Close()
	// the directory, since saving replaces the file.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("cannot watch %q: %w", target, err)
	}

	var tick <-chan time.Time
	if c.interval > 0 {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	if err := refreshOnce(ctx, s, s.provider(c.offline)); err != nil {
		return err
	}
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// sqlite also writes journal files next to the database.
			if !strings.HasPrefix(event.Name, target) || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending = time.After(settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watch error")

		case <-pending:
			pending = nil
			s.ledger = folio.LoadLedger(ctx, s.store)
			if err := refreshOnce(ctx, s, s.provider(c.offline)); err != nil {
				return err
			}

		case <-tick:
			if err := refreshOnce(ctx, s, s.provider(c.offline)); err != nil {
				return err
			}
		}
	}
}

// refreshOnce evaluates the alerts, prints the fired ones and saves the
// ledger if the alert state changed. Saving an unchanged ledger would wake
// the watcher up again.
func refreshOnce(ctx context.Context, s *session, p folio.PriceProvider) error {
	before, err := folio.EncodeLedger(s.ledger)
	if err != nil {
		return err
	}
	v := s.ledger.Refresh(ctx, p)
	logrus.WithField("alerts", len(v.Notifications)).Info("ledger refreshed")
	if len(v.Notifications) > 0 {
		printMarkdown(s.renderer().Notifications(v.Notifications))
	}

	after, err := folio.EncodeLedger(s.ledger)
	if err != nil {
		return err
	}
	if bytes.Equal(before, after) {
		return nil
	}
	if err := s.save(ctx); err != nil {
		return errors.Join(errors.New("cannot save alert state"), err)
	}
	return nil
}
