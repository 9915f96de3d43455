package folio

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PriceProvider answers the current price of a symbol.
//
// Implementations may be remote and fail. Aggregation and alert evaluation
// only ever see the value it returns.
type PriceProvider interface {
	CurrentPrice(ctx context.Context, symbol Symbol) (decimal.Decimal, error)
}

// ManualPriceProvider returns the most recent manual observation of a
// ledger, or zero when there is none.
type ManualPriceProvider struct {
	Ledger *Ledger
}

func (m ManualPriceProvider) CurrentPrice(_ context.Context, symbol Symbol) (decimal.Decimal, error) {
	if obs, ok := m.Ledger.Prices[symbol].Latest(); ok {
		return obs.Price, nil
	}
	return decimal.Zero, nil
}

// FallbackProvider asks Primary first and Secondary when Primary fails.
type FallbackProvider struct {
	Primary   PriceProvider
	Secondary PriceProvider
}

func (f FallbackProvider) CurrentPrice(ctx context.Context, symbol Symbol) (decimal.Decimal, error) {
	price, err := f.Primary.CurrentPrice(ctx, symbol)
	if err == nil {
		return price, nil
	}
	logrus.WithField("symbol", symbol).WithError(err).Warn("price provider failed, falling back")
	return f.Secondary.CurrentPrice(ctx, symbol)
}
