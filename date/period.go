package date

import (
	"fmt"
	"strings"
)

// Period is a reporting granularity for realized figures.
type Period int

const (
	Monthly Period = iota
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %s", p)
	}
}

// Key returns the bucket key of an ISO date string for this period: "YYYY-MM"
// for Monthly and "YYYY" for Yearly.
//
// Key works on the raw string prefix, a date shorter than the key is
// returned as is.
func (p Period) Key(day string) string {
	n := 7
	if p == Yearly {
		n = 4
	}
	if len(day) < n {
		return day
	}
	return day[:n]
}
