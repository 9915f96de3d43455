// Package renderer formats folio views as markdown.
//
// Every section is a heading followed by a list or a GFM table, so the output
// reads well both raw and through a markdown terminal renderer.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/folio"
	"github.com/etnz/folio/locale"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Renderer holds the display settings.
type Renderer struct {
	loc      *locale.Localizer
	currency *money.Currency // nil for plain amounts
}

// New returns a renderer translating labels with loc and formatting amounts
// in currency. An empty or unknown currency formats amounts as plain numbers
// with 2 decimals.
func New(loc *locale.Localizer, currency string) *Renderer {
	r := &Renderer{loc: loc}
	if currency != "" {
		r.currency = money.GetCurrency(strings.ToUpper(currency))
		if r.currency == nil {
			logrus.WithField("currency", currency).Warn("unknown display currency, using plain amounts")
		}
	}
	return r
}

// Amount formats a monetary value.
func (r *Renderer) Amount(d decimal.Decimal) string {
	if r.currency == nil {
		return d.StringFixed(2)
	}
	fraction := int32(r.currency.Fraction)
	return r.currency.Formatter().Format(d.Round(fraction).Shift(fraction).IntPart())
}

// printer accumulates markdown.
type printer struct {
	*strings.Builder
}

func newPrinter() printer { return printer{&strings.Builder{}} }

// Printf formats according to a format specifier and writes to the buffer.
func (p printer) Printf(format string, args ...any) {
	fmt.Fprintf(p, format, args...)
}

// heading starts a section.
func (p printer) heading(title string) {
	p.Printf("## %s\n\n", title)
}

// table writes a GFM table. align holds one of "l" or "r" per column.
func (p printer) table(align string, header []string, rows [][]string) {
	p.row(header)
	delims := make([]string, len(header))
	for i := range delims {
		delims[i] = ":---"
		if i < len(align) && align[i] == 'r' {
			delims[i] = "---:"
		}
	}
	p.Printf("|%s|\n", strings.Join(delims, "|"))
	for _, r := range rows {
		p.row(r)
	}
	p.Printf("\n")
}

func (p printer) row(cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = cell(c)
	}
	p.Printf("| %s |\n", strings.Join(escaped, " | "))
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// cell makes any text safe in a table cell.
func cell(s string) string {
	return cellReplacer.Replace(s)
}

// or returns s, or the placeholder when s is empty.
func or(s string) string {
	if s == "" {
		return folio.Placeholder
	}
	return s
}
