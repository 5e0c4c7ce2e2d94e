package models

import "sort"

// interestThreshold is the minimum size of a single deposit for it to earn
// interest. The threshold applies per deposit, not to cumulative income.
const interestThreshold = 100.0

// Summary holds the derived figures for one account. All four values are
// recomputed from scratch on every render; nothing here is cached between
// mutations.
type Summary struct {
	Balance  float64
	Income   float64
	Expense  float64 // absolute value of the withdrawal total
	Interest float64
}

// Balance sums a movement vector. Positive entries are deposits, negative
// entries withdrawals.
func Balance(movements []float64) float64 {
	var total float64
	for _, m := range movements {
		total += m
	}
	return total
}

// Summarize computes the full derived summary for a movement vector at the
// given interest rate (percent).
func Summarize(movements []float64, interestRate float64) Summary {
	var s Summary
	for _, m := range movements {
		s.Balance += m
		if m > 0 {
			s.Income += m
			if m >= interestThreshold {
				s.Interest += m * interestRate / 100
			}
		} else {
			s.Expense -= m
		}
	}
	return s
}

// SortedAscending returns a copy of the movements ordered ascending by
// amount. The original chronological slice is left untouched.
func SortedAscending(movements []float64) []float64 {
	out := make([]float64, len(movements))
	copy(out, movements)
	sort.Float64s(out)
	return out
}
