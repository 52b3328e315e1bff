package quote

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"orcafacil/go_backend/internal/domain/provider"
)

func sampleQuote() Quote {
	q := Quote{
		Number:   "ORC-0001",
		Customer: Customer{Name: "Maria", Phone: "(11) 98888-7777"},
		Provider: provider.Info{Name: "Acme", Phone: "11999999999"},
		Items: []Item{
			{Description: "Paint", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(100)},
			{Description: "Labor", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(300)},
		},
	}
	q.Recalculate()
	return q
}

func TestShareText(t *testing.T) {
	text := ShareText(sampleQuote())

	assert.Contains(t, text, "• 2un x Paint: R$ 200,00")
	assert.Contains(t, text, "• 1un x Labor: R$ 300,00")
	assert.Contains(t, text, "Total: R$ 500,00")

	order := []string{"ORC-0001", "Olá, Maria!", "Paint", "Labor", "Total: R$ 500,00", "Acme"}
	last := -1
	for _, part := range order {
		i := strings.Index(text, part)
		assert.Greater(t, i, last, "%q out of order", part)
		last = i
	}
	assert.NotContains(t, text, "Obs:")
}

func TestShareTextNotesBeforeProvider(t *testing.T) {
	q := sampleQuote()
	q.Notes = "Validade de 15 dias"
	text := ShareText(q)

	assert.Contains(t, text, "_Obs: Validade de 15 dias_")
	assert.Less(t, strings.Index(text, "Total:"), strings.Index(text, "Obs:"))
	assert.Less(t, strings.Index(text, "Obs:"), strings.Index(text, "*Acme*"))
}

func TestShareTextUsesUnitAndName(t *testing.T) {
	q := Quote{Number: "ORC-0002", Provider: provider.Info{Name: "Acme"}, Items: []Item{
		{Name: "Pintura", Unit: "m²", Quantity: decimal.RequireFromString("12.5"), Price: decimal.NewFromInt(20)},
	}}
	assert.Contains(t, ShareText(q), "• 12,5m² x Pintura: R$ 250,00")
}

func TestWhatsAppURL(t *testing.T) {
	u := WhatsAppURL(sampleQuote())
	assert.True(t, strings.HasPrefix(u, "https://wa.me/5511988887777?text="), u)
	assert.NotContains(t, u, "+")

	q := sampleQuote()
	q.Customer.Phone = "55 11 98888-7777"
	assert.True(t, strings.HasPrefix(WhatsAppURL(q), "https://wa.me/5511988887777?"))
}
