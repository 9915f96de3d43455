package renderer

import (
	"maps"
	"slices"
	"strings"

	"github.com/etnz/folio"
)

// View renders the whole dashboard of a refreshed ledger.
func (r *Renderer) View(l *folio.Ledger, v folio.View) string {
	var b strings.Builder
	b.WriteString(r.Summary(v))
	b.WriteString(r.Notifications(v.Notifications))
	b.WriteString(r.Masters(l.Masters))
	b.WriteString(r.Positions(v.Holdings))
	b.WriteString(r.Trades(l))
	b.WriteString(r.Report(v.Report))
	return b.String()
}

// Summary renders the total profit and loss.
func (r *Renderer) Summary(v folio.View) string {
	p := newPrinter()
	p.heading(r.loc.T("section.summary"))
	p.Printf("- %s: %s\n", r.loc.T("summary.unrealized"), r.Amount(v.Unrealized))
	p.Printf("- %s: %s\n\n", r.loc.T("summary.realized"), r.Amount(v.Realized))
	return p.String()
}

// Notifications renders one line per fired alert.
func (r *Renderer) Notifications(notes []folio.Notification) string {
	p := newPrinter()
	p.heading(r.loc.T("section.alerts"))
	if len(notes) == 0 {
		p.Printf("%s\n\n", r.loc.T("alert.none"))
		return p.String()
	}
	for _, n := range notes {
		p.Printf("- %s\n", r.loc.Notification(n))
	}
	p.Printf("\n")
	return p.String()
}

// Masters renders the instrument masters sorted by symbol.
func (r *Renderer) Masters(masters map[folio.Symbol]folio.InstrumentMaster) string {
	p := newPrinter()
	p.heading(r.loc.T("section.masters"))
	var rows [][]string
	for _, s := range slices.Sorted(maps.Keys(masters)) {
		m := masters[s].Display()
		rows = append(rows, []string{string(m.Symbol), m.Name, m.Market, m.Sector})
	}
	p.table("llll", []string{
		r.loc.T("column.symbol"), r.loc.T("column.name"), r.loc.T("column.market"), r.loc.T("column.sector"),
	}, rows)
	return p.String()
}

// Positions renders the valued positions.
func (r *Renderer) Positions(holdings []folio.Holding) string {
	p := newPrinter()
	p.heading(r.loc.T("section.positions"))
	var rows [][]string
	for _, h := range holdings {
		current := folio.Placeholder
		if h.Priced {
			current = r.Amount(h.Current)
		}
		rows = append(rows, []string{
			string(h.Symbol), r.loc.Broker(h.Broker), h.Master.Name, h.Master.Market, h.Master.Sector,
			h.Quantity.String(), r.Amount(h.AverageCost()), current, r.Amount(h.Unrealized()), r.Amount(h.Realized),
		})
	}
	p.table("lllllrrrrr", []string{
		r.loc.T("column.symbol"), r.loc.T("column.broker"), r.loc.T("column.name"), r.loc.T("column.market"),
		r.loc.T("column.sector"), r.loc.T("column.quantity"), r.loc.T("column.average"), r.loc.T("column.current"),
		r.loc.T("column.unrealized"), r.loc.T("column.realized"),
	}, rows)
	return p.String()
}

// Trades renders the trades of l, most recent first. Trades of the same day
// keep their entry order.
func (r *Renderer) Trades(l *folio.Ledger) string {
	p := newPrinter()
	p.heading(r.loc.T("section.trades"))
	trades := slices.Clone(l.Trades)
	slices.SortStableFunc(trades, func(a, b folio.Trade) int { return strings.Compare(b.Date, a.Date) })

	var rows [][]string
	for _, t := range trades {
		rows = append(rows, []string{
			or(t.Date), string(t.Symbol), r.loc.Broker(t.Broker), or(l.Masters[t.Symbol].Name), r.loc.Side(t.Side),
			t.Quantity.String(), t.Price.String(), t.Fee.String(),
		})
	}
	p.table("lllllrrr", []string{
		r.loc.T("column.date"), r.loc.T("column.symbol"), r.loc.T("column.broker"), r.loc.T("column.name"),
		r.loc.T("column.side"), r.loc.T("column.quantity"), r.loc.T("column.price"), r.loc.T("column.fee"),
	}, rows)
	return p.String()
}

// Report renders the monthly rows then the yearly rows.
func (r *Renderer) Report(report folio.Report) string {
	p := newPrinter()
	p.heading(r.loc.T("section.report"))
	var rows [][]string
	for _, period := range report.Periods() {
		rows = append(rows, []string{r.loc.Period(period.Period), period.Key, r.Amount(period.Value)})
	}
	p.table("llr", []string{r.loc.T("column.kind"), r.loc.T("column.period"), r.loc.T("column.value")}, rows)
	return p.String()
}
