package models

import (
	"strings"
	"unicode/utf8"
)

// Account is a seeded bank account. Balance is never stored on the struct;
// it is recomputed from Movements on every render (see summary.go).
type Account struct {
	Owner        string    `json:"owner" mapstructure:"owner"`
	Username     string    `json:"username" mapstructure:"username"`
	Movements    []float64 `json:"movements" mapstructure:"movements"`
	InterestRate float64   `json:"interestRate" mapstructure:"interest_rate"` // percent
	PIN          int       `json:"-" mapstructure:"pin"`
}

// FirstName returns the leading token of the owner's display name,
// used for the welcome message.
func (a Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// UsernameFor derives the login identifier from an owner display name:
// the lowercase first letter of each whitespace-separated token,
// concatenated in order. "Steven Thomas Williams" becomes "stw".
// Derived once at seed time and never recomputed.
func UsernameFor(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}
