// Package core holds the ledger domain model: transactions, periods,
// the category registry and integer money arithmetic.
//
// Amounts are whole New Taiwan dollars stored as int64. There are no
// fractional cents in this domain, so all derived figures use half-up
// integer rounding.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-entered amount string to whole dollars.
//
// Only plain non-negative integers are accepted. Signs, decimals and
// any non-digit input are rejected rather than coerced to zero.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// RoundPercent returns amount × pct% rounded half-up.
// RoundPercent(10000, 5) == 500.
func RoundPercent(amount, pct int64) int64 {
	return RoundDiv(amount*pct, 100)
}

// RoundDiv returns n/d rounded half-up. Both operands must be
// non-negative and d must be positive.
func RoundDiv(n, d int64) int64 {
	return (2*n + d) / (2 * d)
}
