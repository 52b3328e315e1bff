// Package format holds the pt-BR masks and money formatting used across quotes, catalog and documents.
package format

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonDigits = regexp.MustCompile(`\D`)

// Digits strips everything but ASCII digits from s.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Amount formats d with two decimals, dot thousands and comma decimals: 1500 -> "1.500,00".
func Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// Currency formats d as Brazilian reais: "R$ 1.500,00".
func Currency(d decimal.Decimal) string {
	s := Amount(d)
	if strings.HasPrefix(s, "-") {
		return "-R$ " + s[1:]
	}
	return "R$ " + s
}

// MaskCurrencyInput reads the digits of raw as cents and renders them for a
// masked price field. "150000" -> "1.500,00". No digits yields "".
func MaskCurrencyInput(raw string) string {
	amount, ok := ParseCurrencyInput(raw)
	if !ok {
		return ""
	}
	return Amount(amount)
}

// ParseCurrencyInput is the inverse of MaskCurrencyInput: "1.500,00" -> 1500.00.
// ok is false when raw has no digits.
func ParseCurrencyInput(raw string) (decimal.Decimal, bool) {
	digits := Digits(raw)
	if digits == "" {
		return decimal.Zero, false
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	return cents.Shift(-2), true
}
