// Package money centralizes decimal parsing and rounding for all monetary
// math. Every amount in the system is a shopspring decimal rounded to two
// places; parse failures never propagate into request handling.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	Zero    = decimal.Zero
	Hundred = decimal.NewFromInt(100)
)

// Parse returns the decimal encoded in s, or def when s is blank or not a
// number. Rounding mode is half-up (shopspring Round, half away from zero —
// identical for the non-negative amounts this system handles).
func Parse(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// Round2 rounds to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampPct clamps a discount percentage into [0, 100].
func ClampPct(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(Hundred) {
		return Hundred
	}
	return d
}
