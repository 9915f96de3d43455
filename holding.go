package folio

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Holding is a position valued at the current price of its symbol.
type Holding struct {
	Position
	Master  InstrumentMaster // with placeholders for missing metadata
	Current decimal.Decimal
	Priced  bool // false when the price provider failed
}

// Unrealized returns the open quantity times the spread between the current
// price and the average cost.
func (h Holding) Unrealized() decimal.Decimal {
	return h.Quantity.Mul(h.Current.Sub(h.AverageCost()))
}

// Valuate aggregates the ledger trades and values each position with p.
//
// The provider is queried once per symbol. A failing provider does not fail
// the valuation, the holdings of that symbol are marked unpriced instead.
func Valuate(ctx context.Context, l *Ledger, p PriceProvider) []Holding {
	positions := Aggregate(l.Trades).Sorted()
	prices := make(map[Symbol]decimal.Decimal)
	priced := make(map[Symbol]bool)

	holdings := make([]Holding, 0, len(positions))
	for _, pos := range positions {
		if _, done := prices[pos.Symbol]; !done {
			current, err := p.CurrentPrice(ctx, pos.Symbol)
			if err != nil {
				logrus.WithField("symbol", pos.Symbol).WithError(err).Warn("no current price")
				current = decimal.Zero
			}
			prices[pos.Symbol] = current
			priced[pos.Symbol] = err == nil
		}
		master, ok := l.Masters[pos.Symbol]
		if !ok {
			master = InstrumentMaster{Symbol: pos.Symbol}
		}
		holdings = append(holdings, Holding{
			Position: pos,
			Master:   master.Display(),
			Current:  prices[pos.Symbol],
			Priced:   priced[pos.Symbol],
		})
	}
	return holdings
}

// Totals returns the sum of unrealized and realized profit and loss.
func Totals(holdings []Holding) (unrealized, realized decimal.Decimal) {
	for _, h := range holdings {
		unrealized = unrealized.Add(h.Unrealized())
		realized = realized.Add(h.Realized)
	}
	return unrealized, realized
}
