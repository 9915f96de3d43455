package folio

// This file contains the import/export format: a single flat CSV table where
// each row is a master, a trade, a price or an alert, discriminated by the
// first column. It should remain readable in a spreadsheet.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Row types of the CSV format.
const (
	RowMaster = "MASTER"
	RowTrade  = "TRADE"
	RowPrice  = "PRICE"
	RowAlert  = "ALERT"
)

// CSVHeader is the header row written on export. On import, columns are
// matched by name and may come in any order.
var CSVHeader = []string{
	"type", "symbol", "broker", "name", "market", "sector", "side",
	"quantity", "price", "fee", "date", "targetPrice", "stopPrice",
	"useThreeSigma", "trailingPercent", "highestPrice", "trailingStop",
}

// ErrNoRecords is returned by DecodeCSV when the input holds no data row.
var ErrNoRecords = errors.New("no records in CSV input")

// ExportFilename returns the name of an export file made on day.
func ExportFilename(day date.Date) string {
	return fmt.Sprintf("portfolio-export-%s.csv", day)
}

// EncodeCSV writes the whole ledger to w.
//
// Masters, prices and alerts are written sorted by symbol, trades in entry
// order.
func EncodeCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	row := func(fields map[string]string) []string {
		r := make([]string, len(CSVHeader))
		for i, col := range CSVHeader {
			r[i] = fields[col]
		}
		return r
	}

	rows := [][]string{CSVHeader}
	for _, s := range slices.Sorted(maps.Keys(l.Masters)) {
		m := l.Masters[s]
		rows = append(rows, row(map[string]string{
			"type": RowMaster, "symbol": string(m.Symbol), "name": m.Name, "market": m.Market, "sector": m.Sector,
		}))
	}
	for _, t := range l.Trades {
		rows = append(rows, row(map[string]string{
			"type": RowTrade, "symbol": string(t.Symbol), "broker": t.Broker, "side": string(t.Side),
			"quantity": t.Quantity.String(), "price": t.Price.String(), "fee": t.Fee.String(), "date": t.Date,
		}))
	}
	for _, s := range slices.Sorted(maps.Keys(l.Prices)) {
		for _, obs := range l.Prices[s] {
			rows = append(rows, row(map[string]string{
				"type": RowPrice, "symbol": string(s), "price": obs.Price.String(), "date": obs.Date,
			}))
		}
	}
	for _, s := range slices.Sorted(maps.Keys(l.Alerts)) {
		a := l.Alerts[s]
		sigma := "0"
		if a.UseThreeSigma {
			sigma = "1"
		}
		rows = append(rows, row(map[string]string{
			"type": RowAlert, "symbol": string(s),
			"targetPrice": optionalString(a.TargetPrice), "stopPrice": optionalString(a.StopPrice),
			"useThreeSigma": sigma, "trailingPercent": optionalString(a.TrailingPercent),
			"highestPrice": a.HighestPrice.String(), "trailingStop": optionalString(a.TrailingStop),
		}))
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("cannot write CSV export: %w", err)
	}
	return nil
}

func optionalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// csvRow is a data row with access to cells by column name.
type csvRow struct {
	line  int
	cells []string
	index map[string]int
}

// cell returns the trimmed value of a column, empty if the column is unknown
// or missing from this row.
func (r csvRow) cell(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// record is a decoded data row.
type record interface {
	applyTo(l *Ledger)
}

type masterRecord struct{ InstrumentMaster }

type tradeRecord struct{ Trade }

type priceRecord struct {
	symbol Symbol
	obs    PriceObservation
}

type alertRecord struct {
	symbol Symbol
	config AlertConfig
}

func (r masterRecord) applyTo(l *Ledger) { l.SetMaster(r.InstrumentMaster) }
func (r tradeRecord) applyTo(l *Ledger)  { l.AppendTrade(r.Trade) }
func (r priceRecord) applyTo(l *Ledger)  { l.AppendPrice(r.symbol, r.obs) }
func (r alertRecord) applyTo(l *Ledger)  { l.Alerts[r.symbol] = r.config }

// decodeRecord decodes a data row. It returns a nil record for rows that
// must be skipped: no type, no symbol or an unknown type.
func decodeRecord(r csvRow) (record, error) {
	typ := r.cell("type")
	symbol := NormalizeSymbol(r.cell("symbol"))
	if typ == "" || symbol == "" {
		return nil, nil
	}

	switch typ {
	case RowMaster:
		return masterRecord{InstrumentMaster{
			Symbol: symbol,
			Name:   r.cell("name"),
			Market: r.cell("market"),
			Sector: r.cell("sector"),
		}}, nil

	case RowTrade:
		side, err := ParseSide(r.cell("side"))
		if err != nil {
			return nil, err
		}
		var errs []error
		number := func(col string) decimal.Decimal {
			d, err := parseDecimalOrZero(col, r.cell(col))
			if err == nil {
				err = nonNegative(col, d)
			}
			if err != nil {
				errs = append(errs, err)
			}
			return d
		}
		t := NewTrade(r.cell("date"), string(symbol), r.cell("broker"), side, number("quantity"), number("price"), number("fee"))
		if t.Date, err = optionalDate(t.Date); err != nil {
			errs = append(errs, err)
		}
		return tradeRecord{t}, errors.Join(errs...)

	case RowPrice:
		price, err := parseDecimalOrZero("price", r.cell("price"))
		if err == nil {
			err = nonNegative("price", price)
		}
		if err != nil {
			return nil, err
		}
		day, err := optionalDate(r.cell("date"))
		if err != nil {
			return nil, err
		}
		return priceRecord{symbol, PriceObservation{Date: day, Price: price}}, nil

	case RowAlert:
		var errs []error
		nullable := func(col string) *decimal.Decimal {
			d, err := ParseOptionalDecimal(col, r.cell(col))
			if err != nil {
				errs = append(errs, err)
			}
			return d
		}
		a := AlertConfig{
			TargetPrice:     nullable("targetPrice"),
			StopPrice:       nullable("stopPrice"),
			UseThreeSigma:   r.cell("useThreeSigma") == "1",
			TrailingPercent: nullable("trailingPercent"),
			TrailingStop:    nullable("trailingStop"),
		}
		if high := nullable("highestPrice"); high != nil {
			a.HighestPrice = *high
		}
		return alertRecord{symbol, a}, errors.Join(errs...)

	default:
		logrus.WithField("line", r.line).WithField("type", typ).Warn("skipping CSV row of unknown type")
		return nil, nil
	}
}

// optionalDate canonicalizes a non-empty date.
func optionalDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return parseDate(s)
}

// DecodeCSV reads a full ledger from r.
//
// The first non-blank row is the header. Rows whose cells are all empty are
// skipped. It returns ErrNoRecords when there is no data row to import, and
// an error wrapping ErrInvalidInput when a number or a date cannot be read.
func DecodeCSV(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var index map[string]int
	next := NewLedger()
	count := 0
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse CSV: %w", err)
		}
		if isBlank(cells) {
			continue
		}
		line, _ := cr.FieldPos(0)

		if index == nil {
			index = make(map[string]int, len(cells))
			for i, h := range cells {
				h = strings.TrimSpace(h)
				if i == 0 {
					h = strings.TrimPrefix(h, "\ufeff")
				}
				index[h] = i
			}
			continue
		}

		rec, err := decodeRecord(csvRow{line: line, cells: cells, index: index})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec == nil {
			continue
		}
		rec.applyTo(next)
		count++
	}
	if count == 0 {
		return nil, ErrNoRecords
	}
	return next, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// ImportCSV replaces the whole content of l with the ledger read from r.
//
// An input without any data row leaves l untouched and is not an error. On
// any other failure l is left untouched and the error returned.
func (l *Ledger) ImportCSV(r io.Reader) error {
	next, err := DecodeCSV(r)
	if errors.Is(err, ErrNoRecords) {
		logrus.Info("CSV import is empty, ledger unchanged")
		return nil
	}
	if err != nil {
		return err
	}
	l.Replace(next)
	return nil
}
