package folio

// This file is the ingestion boundary: raw strings typed by the user or read
// from a file become typed values here, or an error wrapping ErrInvalidInput.
// Nothing past this point validates numbers again.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

var errNegative = errors.New("must not be negative")

// ParseDecimal parses a decimal number.
func ParseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, s, err)
	}
	return d, nil
}

// ParseOptionalDecimal parses a decimal number, an empty string is nil.
func ParseOptionalDecimal(field, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDecimal(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseDecimalOrZero parses a decimal number, an empty string is zero.
func parseDecimalOrZero(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseDecimal(field, s)
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, d.String(), errNegative)
	}
	return nil
}

func parseDate(s string) (string, error) {
	day, err := date.Canonical(strings.TrimSpace(s))
	if err != nil {
		return "", invalid("date", s, err)
	}
	return day, nil
}

// ParseSymbol normalizes a symbol typed by the user. It must not be blank.
func ParseSymbol(s string) (Symbol, error) {
	symbol := NormalizeSymbol(s)
	if symbol == "" {
		return "", invalid("symbol", s, errors.New("must not be empty"))
	}
	return symbol, nil
}

// ParseMaster validates a master typed by the user. Only the symbol is
// required.
func ParseMaster(symbol, name, market, sector string) (InstrumentMaster, error) {
	if _, err := ParseSymbol(symbol); err != nil {
		return InstrumentMaster{}, err
	}
	return NewInstrumentMaster(symbol, name, market, sector), nil
}

// ParseTrade validates a trade typed by the user. An empty fee is zero and an
// empty broker is the UnassignedBroker.
//
// The returned error joins every field failure.
func ParseTrade(day, symbol, broker, side, quantity, price, fee string) (Trade, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	s, err := ParseSymbol(symbol)
	collect(err)
	d, err := parseDate(day)
	collect(err)
	sd, err := ParseSide(side)
	collect(err)

	q, err := ParseDecimal("quantity", quantity)
	collect(err)
	if err == nil && !q.IsPositive() {
		collect(invalid("quantity", quantity, errors.New("must be positive")))
	}
	p, err := ParseDecimal("price", price)
	collect(err)
	if err == nil {
		collect(nonNegative("price", p))
	}
	f, err := parseDecimalOrZero("fee", fee)
	collect(err)
	if err == nil {
		collect(nonNegative("fee", f))
	}

	if len(errs) > 0 {
		return Trade{}, errors.Join(errs...)
	}
	return NewTrade(d, string(s), broker, sd, q, p, f), nil
}

// ParsePrice validates a price observation typed by the user.
func ParsePrice(day, price string) (PriceObservation, error) {
	d, err := parseDate(day)
	if err != nil {
		return PriceObservation{}, err
	}
	p, err := ParseDecimal("price", price)
	if err != nil {
		return PriceObservation{}, err
	}
	if err := nonNegative("price", p); err != nil {
		return PriceObservation{}, err
	}
	return PriceObservation{Date: d, Price: p}, nil
}

// ParseAlert validates alert rules typed by the user. Empty thresholds are
// unset. The trailing percent must lie within [0, 100].
func ParseAlert(target, stop string, useThreeSigma bool, trailingPercent string) (AlertConfig, error) {
	var errs []error
	optional := func(field, s string) *decimal.Decimal {
		d, err := ParseOptionalDecimal(field, s)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d != nil {
			if err := nonNegative(field, *d); err != nil {
				errs = append(errs, err)
			}
		}
		return d
	}
	a := AlertConfig{
		TargetPrice:     optional("targetPrice", target),
		StopPrice:       optional("stopPrice", stop),
		UseThreeSigma:   useThreeSigma,
		TrailingPercent: optional("trailingPercent", trailingPercent),
	}
	if a.TrailingPercent != nil && a.TrailingPercent.GreaterThan(hundred) {
		errs = append(errs, invalid("trailingPercent", trailingPercent, fmt.Errorf("must not exceed %s", hundred)))
	}
	if len(errs) > 0 {
		return AlertConfig{}, errors.Join(errs...)
	}
	return a, nil
}
