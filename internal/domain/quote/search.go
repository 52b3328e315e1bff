package quote

import (
	"strings"

	"orcafacil/go_backend/internal/domain/format"
)

// Matches reports whether q fits the listing search box: customer name or
// number containing term, or customer phone containing the digits of term.
func (q Quote) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(q.Customer.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(q.Number), term) {
		return true
	}
	digits := format.Digits(term)
	return digits != "" && strings.Contains(format.Digits(q.Customer.Phone), digits)
}

func Filter(quotes []Quote, term string) []Quote {
	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Matches(term) {
			out = append(out, q)
		}
	}
	return out
}
