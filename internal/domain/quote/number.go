package quote

import (
	"fmt"
	"strconv"

	"orcafacil/go_backend/internal/domain/format"
)

const numberPrefix = "ORC-"

func FormatNumber(n int) string {
	return fmt.Sprintf("%s%04d", numberPrefix, n)
}

// NextNumber returns the number after the highest one in existing. Gaps left
// by deleted quotes are not reused.
func NextNumber(existing []Quote) string {
	highest := 0
	for _, q := range existing {
		n, err := strconv.Atoi(format.Digits(q.Number))
		if err == nil && n > highest {
			highest = n
		}
	}
	return FormatNumber(highest + 1)
}
