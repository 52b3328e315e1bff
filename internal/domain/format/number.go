package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal accepts "2", "2.5", "2,5" and "1.234,56".
func ParseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// ParseQuantity parses a quantity typed by the user. Unparseable or negative
// input yields 0 so a line never ends up without a quantity.
func ParseQuantity(raw string) decimal.Decimal {
	d, err := ParseDecimal(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Quantity renders a quantity with a decimal comma and no trailing zeros.
func Quantity(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}
