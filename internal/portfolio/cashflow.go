// Package portfolio models cash-flow-bearing assets and ordered asset
// collections with parallelizable pricing.
package portfolio

import "github.com/hjkrause/alm-engine/internal/date"

// CashFlow is a dated amount. Amounts may be negative.
type CashFlow struct {
	Date   date.Date
	Amount float64
}

// OccursBetween reports whether the flow falls in the half-open window
// (from, to]: the lower bound is exclusive, the upper bound inclusive.
func (cf CashFlow) OccursBetween(from, to date.Date) bool {
	return cf.Date > from && cf.Date <= to
}
