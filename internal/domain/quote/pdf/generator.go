// Package pdf renders a quote as a printable document.
package pdf

import "orcafacil/go_backend/internal/domain/quote"

type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}
