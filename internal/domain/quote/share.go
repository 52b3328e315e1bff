package quote

import (
	"net/url"
	"strings"

	"orcafacil/go_backend/internal/domain/format"
)

// ShareText renders the message sent to the customer. Section order is fixed:
// number, greeting, item lines, total, notes, provider name.
func ShareText(q Quote) string {
	var b strings.Builder
	b.WriteString("*Orçamento ")
	b.WriteString(q.Number)
	b.WriteString("*\n\n")

	b.WriteString("Olá, ")
	b.WriteString(q.Customer.Name)
	b.WriteString("!\nSegue o resumo do orçamento solicitado:\n\n")

	for _, it := range q.Items {
		b.WriteString("• ")
		b.WriteString(format.Quantity(it.Quantity))
		b.WriteString(it.UnitLabel())
		b.WriteString(" x ")
		b.WriteString(it.Label())
		b.WriteString(": ")
		b.WriteString(format.Currency(it.Subtotal()))
		b.WriteString("\n")
	}

	b.WriteString("\n*Total: ")
	b.WriteString(format.Currency(CalculateTotal(q.Items)))
	b.WriteString("*\n\n")

	if notes := strings.TrimSpace(q.Notes); notes != "" {
		b.WriteString("_Obs: ")
		b.WriteString(notes)
		b.WriteString("_\n\n")
	}

	b.WriteString("Atenciosamente,\n*")
	b.WriteString(q.Provider.Name)
	b.WriteString("*")
	return b.String()
}

// WhatsAppURL opens a chat with the customer prefilled with ShareText.
// Numbers without the 55 country code get it prepended.
func WhatsAppURL(q Quote) string {
	phone := format.Digits(q.Customer.Phone)
	if phone != "" && !strings.HasPrefix(phone, "55") {
		phone = "55" + phone
	}
	text := strings.ReplaceAll(url.QueryEscape(ShareText(q)), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + text
}
