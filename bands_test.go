package folio

import (
	"math"
	"testing"
)

func TestBands_Unavailable(t *testing.T) {
	for n := 0; n < BandWindow; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}
		if _, ok := Bands(series(prices...)); ok {
			t.Errorf("Bands() on %d observations want unavailable", n)
		}
	}
}

func TestBands_Constant(t *testing.T) {
	for _, price := range []float64{100, 0.1, 1234.5678} {
		prices := make([]float64, 25)
		for i := range prices {
			prices[i] = price
		}
		band, ok := Bands(series(prices...))
		if !ok {
			t.Fatalf("Bands() on 25 observations want available")
		}
		if !band.Upper.Equal(D(price)) || !band.Lower.Equal(D(price)) {
			t.Errorf("Bands(constant %v) = [%s, %s], want both equal to the price", price, band.Lower, band.Upper)
		}
	}
}

func TestBands_UsesLastWindow(t *testing.T) {
	// 5 outliers first, then 1..20: only the tail counts.
	prices := []float64{1000, 1000, 1000, 1000, 1000}
	for i := 1; i <= 20; i++ {
		prices = append(prices, float64(i))
	}
	band, ok := Bands(series(prices...))
	if !ok {
		t.Fatal("Bands() want available")
	}

	// mean of 1..20 is 10.5, population variance is (20²-1)/12 = 33.25
	std := math.Sqrt(33.25)
	if !band.Mean.Equal(D(10.5)) {
		t.Errorf("Mean = %s, want 10.5", band.Mean)
	}
	if got := band.Upper.InexactFloat64(); math.Abs(got-(10.5+3*std)) > 1e-9 {
		t.Errorf("Upper = %v, want %v", got, 10.5+3*std)
	}
	if got := band.Lower.InexactFloat64(); math.Abs(got-(10.5-3*std)) > 1e-9 {
		t.Errorf("Lower = %v, want %v", got, 10.5-3*std)
	}
}
