package folio

import "strings"

// Placeholder is displayed in place of missing master metadata.
const Placeholder = "-"

// InstrumentMaster holds optional descriptive metadata about a symbol.
type InstrumentMaster struct {
	Symbol Symbol `json:"symbol"`
	Name   string `json:"name"`
	Market string `json:"market"`
	Sector string `json:"sector"`
}

// NewInstrumentMaster creates a master with normalized symbol and trimmed
// fields. Line breaks are stored as "\n", the only form a CSV export keeps.
func NewInstrumentMaster(symbol, name, market, sector string) InstrumentMaster {
	field := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	}
	return InstrumentMaster{
		Symbol: NormalizeSymbol(symbol),
		Name:   field(name),
		Market: field(market),
		Sector: field(sector),
	}
}

// Display returns a copy of m where empty fields are replaced by the Placeholder.
func (m InstrumentMaster) Display() InstrumentMaster {
	orPlaceholder := func(s string) string {
		if s == "" {
			return Placeholder
		}
		return s
	}
	m.Name = orPlaceholder(m.Name)
	m.Market = orPlaceholder(m.Market)
	m.Sector = orPlaceholder(m.Sector)
	return m
}
