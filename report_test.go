package folio

import (
	"testing"

	"github.com/etnz/folio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestReports(t *testing.T) {
	trades := []Trade{
		buy("2024-12-01", "AAPL", 10, 100, 5),
		sell("2024-12-15", "AAPL", 2, 120, 1),
		sell("2025-01-03", "AAPL", 3, 130, 2),
		sell("2025-01-20", "MSFT", 1, 50, 0),
		sell("2025-02-01", "AAPL", 1, 90, 0),
	}
	r := Reports(trades)

	wantMonthly := map[string]decimal.Decimal{
		"2024-12": D(239), // 2*120-1
		"2025-01": D(438), // 3*130-2 + 50
		"2025-02": D(90),
	}
	wantYearly := map[string]decimal.Decimal{
		"2024": D(239),
		"2025": D(528),
	}
	if diff := cmp.Diff(wantMonthly, r.Monthly, equalDecimals); diff != "" {
		t.Errorf("Monthly mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantYearly, r.Yearly, equalDecimals); diff != "" {
		t.Errorf("Yearly mismatch (-want +got):\n%s", diff)
	}

	want := []Period{
		{date.Monthly, "2024-12", D(239)},
		{date.Monthly, "2025-01", D(438)},
		{date.Monthly, "2025-02", D(90)},
		{date.Yearly, "2024", D(239)},
		{date.Yearly, "2025", D(528)},
	}
	if diff := cmp.Diff(want, r.Periods(), equalDecimals); diff != "" {
		t.Errorf("Periods() mismatch (-want +got):\n%s", diff)
	}
}

// TestReports_NotRealized checks that the report is gross proceeds, not the
// realized profit of the position.
func TestReports_NotRealized(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "AAPL", 10, 100, 0),
		buy("2025-01-02", "AAPL", 10, 200, 0),
		sell("2025-01-03", "AAPL", 5, 300, 10),
	}
	if got := Reports(trades).Monthly["2025-01"]; !got.Equal(D(1490)) {
		t.Errorf("Monthly[2025-01] = %s, want 1490", got)
	}
	if got := Aggregate(trades)[PositionKey{"AAPL", UnassignedBroker}].Realized; !got.Equal(D(740)) {
		t.Errorf("Realized = %s, want 740", got)
	}
}

func TestReports_NoSells(t *testing.T) {
	r := Reports([]Trade{buy("2025-01-01", "AAPL", 1, 1, 0)})
	if len(r.Monthly) != 0 || len(r.Yearly) != 0 || len(r.Periods()) != 0 {
		t.Errorf("Reports() = %v, want empty", r)
	}
}
