package folio

import (
	"context"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the whole persisted state of a portfolio.
//
// A Ledger is owned by a single caller. Every mutation must be followed by a
// SaveLedger of the full ledger.
type Ledger struct {
	Masters map[Symbol]InstrumentMaster `json:"masters"`
	Trades  []Trade                     `json:"trades"` // in entry order
	Alerts  map[Symbol]AlertConfig      `json:"alerts"`
	Prices  map[Symbol]PriceSeries      `json:"prices"`
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Masters: make(map[Symbol]InstrumentMaster),
		Trades:  make([]Trade, 0),
		Alerts:  make(map[Symbol]AlertConfig),
		Prices:  make(map[Symbol]PriceSeries),
	}
}

// allocate makes sure all the maps are allocated, for ledgers decoded from
// partial blobs.
func (l *Ledger) allocate() {
	if l.Masters == nil {
		l.Masters = make(map[Symbol]InstrumentMaster)
	}
	if l.Trades == nil {
		l.Trades = make([]Trade, 0)
	}
	if l.Alerts == nil {
		l.Alerts = make(map[Symbol]AlertConfig)
	}
	if l.Prices == nil {
		l.Prices = make(map[Symbol]PriceSeries)
	}
}

// SetMaster inserts or replaces the master of m.Symbol.
func (l *Ledger) SetMaster(m InstrumentMaster) {
	l.Masters[m.Symbol] = m
}

// AppendTrade records trades after all the existing ones.
func (l *Ledger) AppendTrade(txs ...Trade) {
	l.Trades = append(l.Trades, txs...)
}

// AppendPrice records price observations of a symbol, keeping the series sorted.
func (l *Ledger) AppendPrice(symbol Symbol, obs ...PriceObservation) {
	l.Prices[symbol] = l.Prices[symbol].Insert(obs...)
}

// SetAlert replaces the user rules of a symbol. The high-water mark and the
// trailing stop already maintained for this symbol are preserved.
func (l *Ledger) SetAlert(symbol Symbol, rules AlertConfig) {
	prev := l.Alerts[symbol]
	rules.HighestPrice = prev.HighestPrice
	rules.TrailingStop = prev.TrailingStop
	l.Alerts[symbol] = rules
}

// UpdateAlerts installs the alert state returned by EvaluateAlerts.
func (l *Ledger) UpdateAlerts(alerts map[Symbol]AlertConfig) {
	l.Alerts = alerts
	if l.Alerts == nil {
		l.Alerts = make(map[Symbol]AlertConfig)
	}
}

// Replace discards the whole content of l and installs the content of next.
func (l *Ledger) Replace(next *Ledger) {
	next.allocate()
	*l = *next
}

// Symbols returns all the symbols known by the ledger, sorted.
func (l *Ledger) Symbols() []Symbol {
	set := make(map[Symbol]bool)
	for s := range l.Masters {
		set[s] = true
	}
	for _, t := range l.Trades {
		set[t.Symbol] = true
	}
	for s := range l.Prices {
		set[s] = true
	}
	for s := range l.Alerts {
		set[s] = true
	}
	return slices.Sorted(maps.Keys(set))
}

// View is everything displayed after a refresh.
type View struct {
	Holdings      []Holding
	Notifications []Notification
	Report        Report
	Unrealized    decimal.Decimal
	Realized      decimal.Decimal
}

// Refresh values the ledger and evaluates the alerts. It is one render cycle:
// the alert state of l is updated and l must be saved afterwards.
func (l *Ledger) Refresh(ctx context.Context, p PriceProvider) View {
	holdings := Valuate(ctx, l, p)
	notes, alerts := EvaluateAlerts(holdings, l.Alerts, l.Prices)
	l.UpdateAlerts(alerts)
	unrealized, realized := Totals(holdings)
	return View{
		Holdings:      holdings,
		Notifications: notes,
		Report:        Reports(l.Trades),
		Unrealized:    unrealized,
		Realized:      realized,
	}
}
