package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AlertConfig holds the alert rules of a symbol.
//
// HighestPrice and TrailingStop are not user input: they are maintained by
// EvaluateAlerts and must be persisted with the rest of the ledger.
type AlertConfig struct {
	TargetPrice     *decimal.Decimal `json:"targetPrice"`
	StopPrice       *decimal.Decimal `json:"stopPrice"`
	UseThreeSigma   bool             `json:"useThreeSigma"`
	TrailingPercent *decimal.Decimal `json:"trailingPercent"`
	HighestPrice    decimal.Decimal  `json:"highestPrice"`
	TrailingStop    *decimal.Decimal `json:"trailingStop"`
}

// AlertKind identifies the rule that fired a notification.
type AlertKind int

const (
	TargetReached AlertKind = iota
	StopReached
	UpperBandReached
	LowerBandReached
	TrailingStopReached
)

func (k AlertKind) String() string {
	switch k {
	case TargetReached:
		return "target"
	case StopReached:
		return "stop"
	case UpperBandReached:
		return "upper-band"
	case LowerBandReached:
		return "lower-band"
	case TrailingStopReached:
		return "trailing-stop"
	default:
		return "unknown"
	}
}

// Notification is a fired alert rule.
type Notification struct {
	Symbol Symbol
	Kind   AlertKind
	Level  decimal.Decimal // the threshold that was reached
}

// FormattedLevel returns the level as it is displayed: user thresholds as
// entered, computed thresholds with 2 decimals.
func (n Notification) FormattedLevel() string {
	switch n.Kind {
	case TargetReached, StopReached:
		return n.Level.String()
	default:
		return n.Level.StringFixed(2)
	}
}

func (n Notification) String() string {
	switch n.Kind {
	case TargetReached:
		return fmt.Sprintf("%s: target price %s reached", n.Symbol, n.FormattedLevel())
	case StopReached:
		return fmt.Sprintf("%s: stop-loss %s reached", n.Symbol, n.FormattedLevel())
	case UpperBandReached:
		return fmt.Sprintf("%s: 3σ upper band (%s) reached", n.Symbol, n.FormattedLevel())
	case LowerBandReached:
		return fmt.Sprintf("%s: 3σ lower band (%s) reached", n.Symbol, n.FormattedLevel())
	case TrailingStopReached:
		return fmt.Sprintf("%s: trailing stop (%s) reached", n.Symbol, n.FormattedLevel())
	default:
		return fmt.Sprintf("%s: %s alert", n.Symbol, n.Kind)
	}
}

var hundred = decimal.NewFromInt(100)

// EvaluateAlerts checks the alert rules of every held symbol against its
// current price.
//
// Rules are independent, several notifications can fire for one symbol.
// Symbols without configuration and unpriced holdings are skipped. Band
// rules are skipped while the series is too short.
//
// Evaluation is not a pure read: whenever a trailing percent is set and the
// current price is positive, the high-water mark is raised to the current
// price if higher and the trailing stop recomputed from it. alerts is left
// untouched and the updated configuration is returned. Callers must store it.
func EvaluateAlerts(holdings []Holding, alerts map[Symbol]AlertConfig, prices map[Symbol]PriceSeries) ([]Notification, map[Symbol]AlertConfig) {
	next := make(map[Symbol]AlertConfig, len(alerts))
	for s, a := range alerts {
		next[s] = a
	}

	var notes []Notification
	seen := make(map[Symbol]bool)
	for _, h := range holdings {
		if seen[h.Symbol] || !h.Priced {
			continue
		}
		seen[h.Symbol] = true

		a, ok := next[h.Symbol]
		if !ok {
			continue
		}
		current := h.Current
		notify := func(kind AlertKind, level decimal.Decimal) {
			notes = append(notes, Notification{Symbol: h.Symbol, Kind: kind, Level: level})
		}

		if isSet(a.TargetPrice) && current.GreaterThanOrEqual(*a.TargetPrice) {
			notify(TargetReached, *a.TargetPrice)
		}
		if isSet(a.StopPrice) && current.LessThanOrEqual(*a.StopPrice) {
			notify(StopReached, *a.StopPrice)
		}
		if a.UseThreeSigma {
			if band, ok := Bands(prices[h.Symbol]); ok {
				if current.GreaterThanOrEqual(band.Upper) {
					notify(UpperBandReached, band.Upper)
				}
				if current.LessThanOrEqual(band.Lower) {
					notify(LowerBandReached, band.Lower)
				}
			}
		}
		if isSet(a.TrailingPercent) && current.IsPositive() {
			a.HighestPrice = decimal.Max(a.HighestPrice, current)
			stop := a.HighestPrice.Mul(decimal.NewFromInt(1).Sub(a.TrailingPercent.Div(hundred)))
			a.TrailingStop = &stop
			next[h.Symbol] = a
			if current.LessThanOrEqual(stop) {
				notify(TrailingStopReached, stop)
			}
		}
	}
	return notes, next
}
