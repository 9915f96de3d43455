package folio

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_SetMaster(t *testing.T) {
	l := NewLedger()
	l.SetMaster(NewInstrumentMaster("aapl", "Apple", "", ""))
	l.SetMaster(NewInstrumentMaster("AAPL ", " Apple Inc. ", "NASDAQ", "Tech"))
	if len(l.Masters) != 1 {
		t.Fatalf("Masters = %v, want a single record", l.Masters)
	}
	want := InstrumentMaster{Symbol: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", Sector: "Tech"}
	if got := l.Masters["AAPL"]; got != want {
		t.Errorf("Masters[AAPL] = %+v, want %+v", got, want)
	}
}

func TestLedger_SetAlertKeepsState(t *testing.T) {
	l := NewLedger()
	l.Alerts["AAPL"] = AlertConfig{TrailingPercent: Ptr(10), HighestPrice: D(120), TrailingStop: Ptr(108)}

	l.SetAlert("AAPL", AlertConfig{TargetPrice: Ptr(200), TrailingPercent: Ptr(5), HighestPrice: D(1), TrailingStop: Ptr(1)})

	want := AlertConfig{TargetPrice: Ptr(200), TrailingPercent: Ptr(5), HighestPrice: D(120), TrailingStop: Ptr(108)}
	if diff := cmp.Diff(want, l.Alerts["AAPL"], equalDecimals); diff != "" {
		t.Errorf("SetAlert() mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_Refresh(t *testing.T) {
	l := NewLedger()
	l.SetMaster(NewInstrumentMaster("AAPL", "Apple", "", ""))
	l.AppendTrade(
		buy("2025-01-01", "AAPL", 10, 100, 0),
		buy("2025-01-02", "AAPL", 10, 200, 0),
		sell("2025-01-03", "AAPL", 5, 300, 10),
		buy("2025-01-03", "MSFT", 1, 50, 0),
	)
	l.AppendPrice("AAPL", PriceObservation{"2025-01-04", D(160)})
	l.SetAlert("AAPL", AlertConfig{TargetPrice: Ptr(150), TrailingPercent: Ptr(10)})

	view := l.Refresh(context.Background(), ManualPriceProvider{l})

	if len(view.Holdings) != 2 {
		t.Fatalf("Holdings = %v, want 2", view.Holdings)
	}
	aapl, msft := view.Holdings[0], view.Holdings[1]
	if aapl.Master.Name != "Apple" || msft.Master.Name != Placeholder {
		t.Errorf("masters = %q, %q", aapl.Master.Name, msft.Master.Name)
	}
	// 15 held at 150, valued at 160
	if !aapl.Unrealized().Equal(D(150)) {
		t.Errorf("AAPL Unrealized() = %s, want 150", aapl.Unrealized())
	}
	// no observation for MSFT: current price is 0
	if !msft.Current.IsZero() || !msft.Unrealized().Equal(D(-50)) {
		t.Errorf("MSFT Current = %s, Unrealized() = %s", msft.Current, msft.Unrealized())
	}
	if !view.Unrealized.Equal(D(100)) || !view.Realized.Equal(D(740)) {
		t.Errorf("totals = %s, %s want 100, 740", view.Unrealized, view.Realized)
	}
	if diff := cmp.Diff([]AlertKind{TargetReached}, kinds(view.Notifications)); diff != "" {
		t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
	}

	// the trailing state must be installed in the ledger.
	a := l.Alerts["AAPL"]
	if !a.HighestPrice.Equal(D(160)) || a.TrailingStop == nil || !a.TrailingStop.Equal(D(144)) {
		t.Errorf("alert state = %s, %v, want 160, 144", a.HighestPrice, a.TrailingStop)
	}
}

func TestLedger_Symbols(t *testing.T) {
	l := sampleLedger()
	l.AppendPrice("MSFT", PriceObservation{"2025-01-01", D(1)})
	want := []Symbol{"7203.T", "AAPL", "MSFT"}
	if diff := cmp.Diff(want, l.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}
