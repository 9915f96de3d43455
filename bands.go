package folio

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// BandWindow is the number of most recent observations used for bands.
	BandWindow = 20
	// BandWidth is the number of standard deviations of each band.
	BandWidth = 3
)

// Band is the rolling mean ± 3σ envelope of a price series.
type Band struct {
	Mean   decimal.Decimal
	StdDev decimal.Decimal
	Upper  decimal.Decimal
	Lower  decimal.Decimal
}

// Bands computes the band over the last BandWindow observations of series.
// It returns false when the series is shorter than BandWindow.
//
// The variance is the population variance (divided by N).
func Bands(series PriceSeries) (Band, bool) {
	if len(series) < BandWindow {
		return Band{}, false
	}
	closes := series.Last(BandWindow).Closes()
	n := decimal.NewFromInt(int64(len(closes)))

	mean := decimal.Sum(decimal.Zero, closes...).Div(n)
	variance := decimal.Zero
	for _, c := range closes {
		dev := c.Sub(mean)
		variance = variance.Add(dev.Mul(dev))
	}
	variance = variance.Div(n)

	std := decimal.Zero
	if !variance.IsZero() {
		std = decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
	}
	width := std.Mul(decimal.NewFromInt(BandWidth))
	return Band{
		Mean:   mean,
		StdDev: std,
		Upper:  mean.Add(width),
		Lower:  mean.Sub(width),
	}, true
}
