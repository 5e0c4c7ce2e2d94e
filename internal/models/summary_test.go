package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_DerivedFigures(t *testing.T) {
	movements := []float64{200, 450, -400, 3000, -650, -130, 70, 1300}

	s := Summarize(movements, 1.2)

	assert.InDelta(t, 3840, s.Balance, 1e-9)
	assert.InDelta(t, 5020, s.Income, 1e-9)
	assert.InDelta(t, 1180, s.Expense, 1e-9)
	// Only deposits of at least 100 earn interest: 200, 450, 3000, 1300.
	assert.InDelta(t, 59.4, s.Interest, 1e-9)
}

func TestSummarize_IncomeMinusExpenseEqualsBalance(t *testing.T) {
	movements := []float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30}

	s := Summarize(movements, 1.5)

	assert.InDelta(t, s.Balance, s.Income-s.Expense, 1e-9)
	assert.InDelta(t, Balance(movements), s.Balance, 1e-9)
}

func TestSummarize_SmallDepositEarnsNoInterest(t *testing.T) {
	s := Summarize([]float64{99.99, 100}, 10)

	// The threshold applies to each deposit on its own, not to the total.
	assert.InDelta(t, 10, s.Interest, 1e-9)
}

func TestUsernameFor(t *testing.T) {
	tests := []struct {
		owner    string
		expected string
	}{
		{"Jonas Schmedtmann", "js"},
		{"Jessica Davis", "jd"},
		{"Steven Thomas Williams", "stw"},
		{"Sarah Smith", "ss"},
		{"", ""},
		{"  Padded   Name  ", "pn"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, UsernameFor(tc.owner), "owner %q", tc.owner)
	}
}

func TestSortedAscending_DoesNotMutateInput(t *testing.T) {
	movements := []float64{200, -200, 340, -300}

	sorted := SortedAscending(movements)

	assert.Equal(t, []float64{-300, -200, 200, 340}, sorted)
	assert.Equal(t, []float64{200, -200, 340, -300}, movements)
}

func TestAccount_FirstName(t *testing.T) {
	assert.Equal(t, "Steven", Account{Owner: "Steven Thomas Williams"}.FirstName())
	assert.Equal(t, "", Account{}.FirstName())
}
