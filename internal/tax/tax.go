// Package tax computes income tax over a progressive bracket table.
package tax

import (
	"errors"
	"math"
)

var ErrInvalidIncome = errors.New("income must be a non-negative number")

// Annual income brackets, all amounts in the same currency units.
const (
	bracket1 = 250_000
	bracket2 = 500_000
	bracket3 = 1_000_000

	rate1 = 0.05
	rate2 = 0.20
	rate3 = 0.30
)

// Calculate returns the tax owed on the given annual income. Boundaries are
// inclusive of the lower bracket: tax at exactly 250,000 is 0, at exactly
// 500,000 it is 12,500.
func Calculate(income float64) (float64, error) {
	if income < 0 || math.IsNaN(income) || math.IsInf(income, 0) {
		return 0, ErrInvalidIncome
	}

	switch {
	case income <= bracket1:
		return 0, nil
	case income <= bracket2:
		return (income - bracket1) * rate1, nil
	case income <= bracket3:
		return (bracket2-bracket1)*rate1 + (income-bracket2)*rate2, nil
	default:
		return (bracket2-bracket1)*rate1 + (bracket3-bracket2)*rate2 + (income-bracket3)*rate3, nil
	}
}
