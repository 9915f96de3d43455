package folio

import (
	"maps"
	"slices"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Report holds the sell-side cash flow of the ledger per month and per year.
//
// Each sell contributes quantity*price - fee. This is the gross proceeds of
// the sale, not the realized profit of the position.
type Report struct {
	Monthly map[string]decimal.Decimal
	Yearly  map[string]decimal.Decimal
}

// Period is a single row of a report.
type Period struct {
	Period date.Period
	Key    string
	Value  decimal.Decimal
}

// Reports folds the sell trades into monthly and yearly buckets.
func Reports(trades []Trade) Report {
	r := Report{
		Monthly: make(map[string]decimal.Decimal),
		Yearly:  make(map[string]decimal.Decimal),
	}
	for _, t := range trades {
		if t.Side != Sell {
			continue
		}
		proceeds := t.Amount().Sub(t.Fee)
		month, year := date.Monthly.Key(t.Date), date.Yearly.Key(t.Date)
		r.Monthly[month] = r.Monthly[month].Add(proceeds)
		r.Yearly[year] = r.Yearly[year].Add(proceeds)
	}
	return r
}

// Periods returns the monthly rows then the yearly rows, each sorted by key.
func (r Report) Periods() []Period {
	var rows []Period
	for _, key := range slices.Sorted(maps.Keys(r.Monthly)) {
		rows = append(rows, Period{date.Monthly, key, r.Monthly[key]})
	}
	for _, key := range slices.Sorted(maps.Keys(r.Yearly)) {
		rows = append(rows, Period{date.Yearly, key, r.Yearly[key]})
	}
	return rows
}
