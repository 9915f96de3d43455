package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
)

// fol runs the fol command line against the ledger stored in dir.
func fol(t *testing.T, dir string, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	cfgFile := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("store:\n  kind: file\n  path: "+filepath.Join(dir, "store")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("fol", flag.ContinueOnError)
	SetFlags(fs)
	commander := subcommands.NewCommander(fs, "fol")
	commander.Output, commander.Error = &errOut, &errOut
	Register(commander)
	if err := fs.Parse(append([]string{"-raw", "-config", cfgFile, "-lang", "en"}, args...)); err != nil {
		t.Fatal(err)
	}
	status := commander.Execute(context.Background())
	if status != subcommands.ExitSuccess {
		t.Logf("fol %s: %s", strings.Join(args, " "), errOut.String())
	}
	return out.String(), status
}

// isolate keeps the FOLIO_* environment of the machine out of the test.
func isolate(t *testing.T) {
	for _, key := range []string{config.EnvFile, config.EnvStoreKind, config.EnvStorePath, config.EnvStoreAddr,
		config.EnvStoreKey, config.EnvCurrency, config.EnvLanguage, config.EnvLogLevel, config.EnvQuoteURL, config.EnvQuotePath} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func loadStored(t *testing.T, dir string) *folio.Ledger {
	t.Helper()
	s, err := store.NewFile(filepath.Join(dir, "store"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := s.Load(context.Background(), folio.StorageKey)
	if err != nil {
		t.Fatalf("no ledger stored: %v", err)
	}
	l, err := folio.DecodeLedger(data)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, status := fol(t, dir, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("fol %s = %v, want success", strings.Join(args, " "), status)
	}
	return out
}

func TestWorkflow(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	mustRun(t, dir, "master", "-s", "aapl", "-name", "Apple")
	mustRun(t, dir, "buy", "-s", "AAPL", "-q", "10", "-p", "100", "-d", "2025-01-01")
	mustRun(t, dir, "buy", "-s", "AAPL", "-q", "10", "-p", "200", "-d", "2025-1-2")
	mustRun(t, dir, "sell", "-s", "AAPL", "-q", "5", "-p", "300", "-fee", "10", "-d", "2025-01-03")
	mustRun(t, dir, "price", "-s", "AAPL", "-p", "160", "-d", "2025-01-04")
	mustRun(t, dir, "alert", "-s", "AAPL", "-target", "150", "-trailing", "10")

	out := mustRun(t, dir, "positions", "-offline")
	for _, want := range []string{
		"- AAPL: target price 150 reached",
		"| AAPL | unassigned | Apple | - | - | 15 | 150.00 | 160.00 | 150.00 | 740.00 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("positions output does not contain %q:\n%s", want, out)
		}
	}

	l := loadStored(t, dir)
	if len(l.Trades) != 3 || l.Trades[1].Date != "2025-01-02" {
		t.Errorf("stored trades = %v", l.Trades)
	}
	a := l.Alerts["AAPL"]
	if !a.HighestPrice.Equal(folio.D(160)) || a.TrailingStop == nil || !a.TrailingStop.Equal(folio.D(144)) {
		t.Errorf("stored trailing state = %s, %v want 160, 144", a.HighestPrice, a.TrailingStop)
	}

	out = mustRun(t, dir, "report", "-offline", "-p", "yearly")
	if !strings.Contains(out, "| Yearly | 2025 | 1490.00 |") || strings.Contains(out, "Monthly") {
		t.Errorf("report output:\n%s", out)
	}

	// changing the rules keeps the trailing state.
	mustRun(t, dir, "alert", "-s", "AAPL", "-trailing", "5")
	if a := loadStored(t, dir).Alerts["AAPL"]; !a.HighestPrice.Equal(folio.D(160)) || a.TargetPrice != nil {
		t.Errorf("alert state after rule change = %+v", a)
	}

	mustRun(t, dir, "alert", "-s", "AAPL", "-rm")
	if alerts := loadStored(t, dir).Alerts; len(alerts) != 0 {
		t.Errorf("alerts after -rm = %v", alerts)
	}
}

func TestTrailingStopFollowsRecordedPeak(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	mustRun(t, dir, "buy", "-s", "AAPL", "-q", "1", "-p", "100", "-d", "2025-01-01")
	mustRun(t, dir, "alert", "-s", "AAPL", "-trailing", "10")
	mustRun(t, dir, "price", "-s", "AAPL", "-p", "120", "-d", "2025-01-02")

	const fired = "- AAPL: trailing stop (108.00) reached"
	if out := mustRun(t, dir, "price", "-s", "AAPL", "-p", "105", "-d", "2025-01-03"); !strings.Contains(out, fired) {
		t.Errorf("price output does not contain %q:\n%s", fired, out)
	}
	a := loadStored(t, dir).Alerts["AAPL"]
	if !a.HighestPrice.Equal(folio.D(120)) || a.TrailingStop == nil || !a.TrailingStop.Equal(folio.D(108)) {
		t.Errorf("stored trailing state = %s, %v want 120, 108", a.HighestPrice, a.TrailingStop)
	}
	if out := mustRun(t, dir, "positions", "-offline"); !strings.Contains(out, fired) {
		t.Errorf("positions output does not contain %q:\n%s", fired, out)
	}
}

func TestInvalidInputChangesNothing(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	mustRun(t, dir, "buy", "-s", "AAPL", "-q", "1", "-p", "1", "-d", "2025-01-01")

	tests := [][]string{
		{"buy", "-s", "AAPL", "-q", "0", "-p", "1"},
		{"sell", "-s", "AAPL", "-q", "ten", "-p", "1"},
		{"buy", "-s", "", "-q", "1", "-p", "1"},
		{"price", "-s", "AAPL", "-p", "-3"},
		{"price", "-s", "AAPL", "-p", "3", "-d", "yesterday"},
		{"alert", "-s", "AAPL", "-trailing", "150"},
		{"master", "-s", " "},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, status := fol(t, dir, args...); status != subcommands.ExitUsageError {
				t.Errorf("status = %v, want usage error", status)
			}
		})
	}
	if l := loadStored(t, dir); len(l.Trades) != 1 || len(l.Prices) != 0 || len(l.Alerts) != 0 || len(l.Masters) != 0 {
		t.Errorf("ledger changed by invalid input: %+v", l)
	}
}

func TestExportImport(t *testing.T) {
	isolate(t)
	src, dst := t.TempDir(), t.TempDir()
	mustRun(t, src, "master", "-s", "MSFT", "-name", "Microsoft, Corp.")
	mustRun(t, src, "buy", "-s", "MSFT", "-q", "2", "-p", "400", "-b", "SBI", "-d", "2025-03-01")
	mustRun(t, src, "alert", "-s", "MSFT", "-stop", "350", "-sigma")

	file := filepath.Join(src, "export.csv")
	mustRun(t, src, "export", "-o", file)

	mustRun(t, dst, "buy", "-s", "AAPL", "-q", "1", "-p", "1", "-d", "2025-01-01")
	mustRun(t, dst, "import", file)

	want, got := loadStored(t, src), loadStored(t, dst)
	if len(got.Trades) != 1 || got.Trades[0].Symbol != "MSFT" || got.Trades[0].Broker != "SBI" {
		t.Errorf("imported trades = %v", got.Trades)
	}
	if got.Masters["MSFT"] != want.Masters["MSFT"] {
		t.Errorf("imported master = %+v, want %+v", got.Masters["MSFT"], want.Masters["MSFT"])
	}
	if a := got.Alerts["MSFT"]; !a.UseThreeSigma || a.StopPrice == nil || !a.StopPrice.Equal(folio.D(350)) {
		t.Errorf("imported alert = %+v", a)
	}

	out := mustRun(t, src, "export", "-o", "-")
	if !strings.HasPrefix(out, strings.Join(folio.CSVHeader, ",")+"\n") {
		t.Errorf("export to stdout does not start with the header:\n%s", out)
	}

	empty := filepath.Join(dst, "empty.csv")
	if err := os.WriteFile(empty, []byte(strings.Join(folio.CSVHeader, ",")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, dst, "import", empty)
	if l := loadStored(t, dst); len(l.Trades) != 1 {
		t.Errorf("empty import changed the ledger: %v", l.Trades)
	}

	if _, status := fol(t, dst, "import"); status != subcommands.ExitUsageError {
		t.Errorf("import without file = %v, want usage error", status)
	}
}

func TestTopic(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if out := mustRun(t, dir, "topic"); !strings.Contains(out, "# fol manual") {
		t.Errorf("fol topic = %q, want the manual index", out)
	}
	if out := mustRun(t, dir, "topic", "csv"); !strings.Contains(out, "fol export") {
		t.Errorf("fol topic csv = %q, want the csv topic", out)
	}
	if _, status := fol(t, dir, "topic", "nope"); status != subcommands.ExitFailure {
		t.Errorf("fol topic nope = %v, want failure", status)
	}
}
