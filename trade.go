package folio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnassignedBroker is the broker of trades recorded without one.
const UnassignedBroker = "unassigned"

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a side case-insensitively. An empty string is a buy.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return "", invalid("side", s, fmt.Errorf("want %s or %s", Buy, Sell))
	}
}

// Trade is a single recorded buy or sell. Trades are immutable once recorded.
type Trade struct {
	Symbol   Symbol          `json:"symbol"`
	Broker   string          `json:"broker"`
	Side     Side            `json:"side"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Date     string          `json:"date"`
}

// NewTrade creates a trade with a normalized symbol and broker.
func NewTrade(day, symbol, broker string, side Side, quantity, price, fee decimal.Decimal) Trade {
	return Trade{
		Symbol:   NormalizeSymbol(symbol),
		Broker:   normalizeBroker(broker),
		Side:     side,
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
		Date:     day,
	}
}

func normalizeBroker(b string) string {
	b = strings.TrimSpace(b)
	if b == "" {
		return UnassignedBroker
	}
	return b
}

// Amount returns quantity times price, fee excluded.
func (t Trade) Amount() decimal.Decimal { return t.Quantity.Mul(t.Price) }

func (t Trade) String() string {
	return fmt.Sprintf("%s %s %s %s@%s fee %s (%s)", t.Date, t.Side, t.Symbol, t.Quantity, t.Price, t.Fee, t.Broker)
}
