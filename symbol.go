package folio

import "strings"

// Symbol is a normalized instrument identifier. It is the key of masters,
// prices and alerts.
type Symbol string

// NormalizeSymbol trims and uppercases s.
func NormalizeSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

func (s Symbol) String() string { return string(s) }
