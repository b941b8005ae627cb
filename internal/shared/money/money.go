// Package money handles fixed-point currency amounts. Amounts are stored as
// integer cents; the API boundary and the payment gateway speak decimal
// strings ("450.00").
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string like "450", "450.5" or "450.00"
// into cents. At most two fractional digits are accepted; the amount must
// be positive.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("money: amount must be positive")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("money: at most two decimal places allowed")
	}
	// Both parts must be bare digits; ParseInt alone would let a sign
	// slip into the fraction ("450.-5").
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	if w > (math.MaxInt64-f)/100 {
		return 0, fmt.Errorf("money: amount too large")
	}

	cents := w*100 + f
	if cents <= 0 {
		return 0, fmt.Errorf("money: amount must be positive")
	}
	return cents, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders cents as a plain two-decimal string, the form the
// gateway expects ("450.00").
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// FormatWithCurrency renders an amount for human-facing text, e.g. email
// bodies: "450.00 ETB".
func FormatWithCurrency(cents int64, currency string) string {
	return FormatAmount(cents) + " " + currency
}
