package folio

import (
	"github.com/etnz/folio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// equalDecimals compares decimals by value, 1.50 equals 1.5.
var equalDecimals = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// buy and sell are helpers for test to create trades from const.
func buy(day, symbol string, q, p, fee float64) Trade {
	return NewTrade(day, symbol, "", Buy, D(q), D(p), D(fee))
}

func sell(day, symbol string, q, p, fee float64) Trade {
	return NewTrade(day, symbol, "", Sell, D(q), D(p), D(fee))
}

// series returns a price series of consecutive days in January 2025 and
// following, one per price.
func series(prices ...float64) PriceSeries {
	var s PriceSeries
	for i, p := range prices {
		s = s.Insert(PriceObservation{Date: day(i), Price: D(p)})
	}
	return s
}

func day(i int) string {
	return date.New(2025, 1, 1).Add(i).String()
}
