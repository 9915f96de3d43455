package folio

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// PositionKey identifies a position: a symbol held at a broker.
type PositionKey struct {
	Symbol Symbol
	Broker string
}

// Position is the aggregate of all trades of a symbol at a broker.
//
// Positions are derived from the full trade history on every query and never
// persisted.
type Position struct {
	Symbol    Symbol
	Broker    string
	Quantity  decimal.Decimal
	CostBasis decimal.Decimal // total cost of the open quantity, fees included
	Realized  decimal.Decimal
}

// Key returns the position key.
func (p Position) Key() PositionKey { return PositionKey{p.Symbol, p.Broker} }

// AverageCost returns the cost basis per open unit, zero when nothing is held.
func (p Position) AverageCost() decimal.Decimal {
	if !p.Quantity.IsPositive() {
		return decimal.Zero
	}
	return p.CostBasis.Div(p.Quantity)
}

// apply folds a single trade into the position.
//
// A sell larger than the held quantity is accepted and leaves a negative
// quantity. A sell of exactly the held quantity releases the whole cost basis,
// so no division residue is carried into later buys.
func (p *Position) apply(t Trade) {
	switch {
	case t.Side == Buy:
		p.Quantity = p.Quantity.Add(t.Quantity)
		p.CostBasis = p.CostBasis.Add(t.Amount()).Add(t.Fee)
	case p.CostBasis.IsPositive() && p.Quantity.IsPositive() && t.Quantity.Equal(p.Quantity):
		p.Realized = p.Realized.Add(t.Amount()).Sub(p.CostBasis).Sub(t.Fee)
		p.Quantity = decimal.Zero
		p.CostBasis = decimal.Zero
	default:
		avg := decimal.Zero
		if p.CostBasis.IsPositive() && p.Quantity.IsPositive() {
			avg = p.CostBasis.Div(p.Quantity)
		}
		p.Realized = p.Realized.Add(t.Quantity.Mul(t.Price.Sub(avg))).Sub(t.Fee)
		p.Quantity = p.Quantity.Sub(t.Quantity)
		p.CostBasis = p.CostBasis.Sub(avg.Mul(t.Quantity))
	}
}

// Positions indexes positions by key.
type Positions map[PositionKey]Position

// Aggregate folds trades, in the order given, into positions.
func Aggregate(trades []Trade) Positions {
	positions := make(Positions)
	for _, t := range trades {
		key := PositionKey{Symbol: t.Symbol, Broker: normalizeBroker(t.Broker)}
		p, ok := positions[key]
		if !ok {
			p = Position{Symbol: key.Symbol, Broker: key.Broker}
		}
		p.apply(t)
		positions[key] = p
	}
	return positions
}

// Sorted returns the positions ordered by symbol then broker.
func (ps Positions) Sorted() []Position {
	list := make([]Position, 0, len(ps))
	for _, p := range ps {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b Position) int {
		return cmp.Or(cmp.Compare(a.Symbol, b.Symbol), cmp.Compare(a.Broker, b.Broker))
	})
	return list
}
