package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// EncodeLedger returns the blob representation of l: a single JSON object
// with the properties "masters", "trades", "alerts" and "prices". Numbers are
// written as bare JSON numbers.
func EncodeLedger(l *Ledger) ([]byte, error) {
	trades := make([]tradeBlob, 0, len(l.Trades))
	for _, t := range l.Trades {
		trades = append(trades, tradeBlob{
			Symbol: t.Symbol, Broker: t.Broker, Side: t.Side,
			Quantity: number(t.Quantity), Price: number(t.Price), Fee: number(t.Fee), Date: t.Date,
		})
	}
	alerts := make(map[Symbol]alertBlob, len(l.Alerts))
	for s, a := range l.Alerts {
		alerts[s] = alertBlob{
			TargetPrice:     (*number)(a.TargetPrice),
			StopPrice:       (*number)(a.StopPrice),
			UseThreeSigma:   a.UseThreeSigma,
			TrailingPercent: (*number)(a.TrailingPercent),
			HighestPrice:    number(a.HighestPrice),
			TrailingStop:    (*number)(a.TrailingStop),
		}
	}
	prices := make(map[Symbol][]observationBlob, len(l.Prices))
	for s, series := range l.Prices {
		obs := make([]observationBlob, 0, len(series))
		for _, o := range series {
			obs = append(obs, observationBlob{Date: o.Date, Price: number(o.Price)})
		}
		prices[s] = obs
	}

	var o orderedObject
	o.Set("masters", l.Masters).
		Set("trades", trades).
		Set("alerts", alerts).
		Set("prices", prices)
	data, err := o.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("cannot encode ledger: %w", err)
	}
	return data, nil
}

// number is a decimal marshaled as a bare JSON number. decimal.Decimal
// unmarshals both forms, so decoding uses the model types directly.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) { return []byte(decimal.Decimal(n).String()), nil }

// Blob shapes of the model types, same property names and order.
type (
	tradeBlob struct {
		Symbol   Symbol `json:"symbol"`
		Broker   string `json:"broker"`
		Side     Side   `json:"side"`
		Quantity number `json:"quantity"`
		Price    number `json:"price"`
		Fee      number `json:"fee"`
		Date     string `json:"date"`
	}
	observationBlob struct {
		Date  string `json:"date"`
		Price number `json:"price"`
	}
	alertBlob struct {
		TargetPrice     *number `json:"targetPrice"`
		StopPrice       *number `json:"stopPrice"`
		UseThreeSigma   bool    `json:"useThreeSigma"`
		TrailingPercent *number `json:"trailingPercent"`
		HighestPrice    number  `json:"highestPrice"`
		TrailingStop    *number `json:"trailingStop"`
	}
)

// DecodeLedger parses a blob produced by EncodeLedger. Missing properties
// decode as empty.
func DecodeLedger(data []byte) (*Ledger, error) {
	l := NewLedger()
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(l); err != nil {
		return nil, fmt.Errorf("cannot decode ledger: %w", err)
	}
	l.allocate()
	return l, nil
}

// LoadLedger reads the ledger from s.
//
// It never fails: a missing blob, an unreadable store or a corrupt blob all
// yield an empty ledger. Only the last two are logged.
func LoadLedger(ctx context.Context, s Store) *Ledger {
	data, err := s.Load(ctx, StorageKey)
	if errors.Is(err, ErrNotFound) {
		return NewLedger()
	}
	if err != nil {
		logrus.WithError(err).Warn("cannot load ledger, starting from an empty one")
		return NewLedger()
	}
	l, err := DecodeLedger(data)
	if err != nil {
		logrus.WithError(err).Warn("corrupt ledger, starting from an empty one")
		return NewLedger()
	}
	return l
}

// SaveLedger overwrites the ledger blob in s with the full content of l.
func SaveLedger(ctx context.Context, s Store, l *Ledger) error {
	data, err := EncodeLedger(l)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	return nil
}
