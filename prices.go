package folio

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceObservation is a manually recorded price on a day.
type PriceObservation struct {
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// PriceSeries is a list of observations for one symbol, sorted ascending by date.
//
// Observations on the same date are all kept in insertion order.
type PriceSeries []PriceObservation

// Insert appends obs and restores the ascending date order.
func (s PriceSeries) Insert(obs ...PriceObservation) PriceSeries {
	s = append(s, obs...)
	slices.SortStableFunc(s, func(a, b PriceObservation) int {
		return strings.Compare(a.Date, b.Date)
	})
	return s
}

// Latest returns the most recent observation, false if there is none.
func (s PriceSeries) Latest() (PriceObservation, bool) {
	if len(s) == 0 {
		return PriceObservation{}, false
	}
	return s[len(s)-1], true
}

// Last returns the n most recent observations, or all of them if there are fewer.
func (s PriceSeries) Last(n int) PriceSeries {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return nil
	}
	return s[len(s)-n:]
}

// Closes returns the prices of the series in order.
func (s PriceSeries) Closes() []decimal.Decimal {
	closes := make([]decimal.Decimal, len(s))
	for i, obs := range s {
		closes[i] = obs.Price
	}
	return closes
}
