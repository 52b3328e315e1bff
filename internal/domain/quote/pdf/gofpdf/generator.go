package gofpdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/format"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/quote"
)

const (
	font       = "Helvetica"
	pageMargin = 15.0
	logoHeight = 22.0
)

// column widths of the item table, in mm; they add up to the A4 content width.
var cols = [4]float64{95, 25, 30, 30}

type Generator struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Orçamento "+q.Number), false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(font, "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	g.header(pdf, tr, q)
	customer(pdf, tr, q.Customer)
	items(pdf, tr, q.Items)

	pdf.Ln(4)
	pdf.SetFont(font, "B", 12)
	pdf.CellFormat(cols[0]+cols[1]+cols[2], 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(cols[3], 8, tr(format.Currency(quote.CalculateTotal(q.Items))), "T", 1, "R", false, 0, "")

	if notes := strings.TrimSpace(q.Notes); notes != "" {
		pdf.Ln(6)
		pdf.SetFont(font, "B", 10)
		pdf.CellFormat(0, 6, tr("Observações"), "", 1, "L", false, 0, "")
		pdf.SetFont(font, "", 10)
		pdf.MultiCell(0, 5, tr(notes), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		g.log.Error("quote pdf: render failed", zap.String("number", q.Number), zap.Error(err))
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.log.Error("quote pdf: output failed", zap.String("number", q.Number), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *gofpdf.Fpdf, tr func(string) string, q quote.Quote) {
	p := q.Provider
	top := pdf.GetY()
	textX := pageMargin

	if p.Logo != "" {
		png, err := provider.LogoPNG(p.Logo)
		if err != nil {
			// An unreadable logo only costs the image, not the document.
			g.log.Warn("quote pdf: skipping logo", zap.String("number", q.Number), zap.Error(err))
		} else {
			name := "logo-" + q.ID
			opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
			pdf.ImageOptions(name, pageMargin, top, 0, logoHeight, false, opts, 0, "")
			textX = pageMargin + logoHeight + 6
		}
	}

	pdf.SetXY(textX, top)
	pdf.SetFont(font, "B", 14)
	pdf.CellFormat(0, 7, tr(p.Name), "", 2, "L", false, 0, "")
	pdf.SetFont(font, "", 9)
	for _, line := range []string{
		labelled("CPF/CNPJ", p.Document),
		labelled("Tel", p.Phone),
		labelled("E-mail", p.Email),
		p.Address,
	} {
		if line != "" {
			pdf.CellFormat(0, 4.5, tr(line), "", 2, "L", false, 0, "")
		}
	}
	if y := top + logoHeight; pdf.GetY() < y && textX != pageMargin {
		pdf.SetY(y)
	}

	pdf.SetX(pageMargin)
	pdf.Ln(4)
	pdf.SetFont(font, "B", 12)
	pdf.CellFormat(120, 7, tr("Orçamento "+q.Number), "B", 0, "L", false, 0, "")
	pdf.SetFont(font, "", 10)
	date := ""
	if !q.CreatedAt.IsZero() {
		date = q.CreatedAt.Format("02/01/2006")
	}
	pdf.CellFormat(0, 7, date, "B", 1, "R", false, 0, "")
	pdf.Ln(3)
}

func customer(pdf *gofpdf.Fpdf, tr func(string) string, c quote.Customer) {
	pdf.SetFont(font, "B", 10)
	pdf.CellFormat(0, 6, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 10)
	city := strings.Trim(strings.Join([]string{c.City, c.State}, " - "), " -")
	for _, line := range []string{
		c.Name,
		labelled("Tel", c.Phone),
		labelled("E-mail", c.Email),
		c.Address,
		city,
	} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
}

func items(pdf *gofpdf.Fpdf, tr func(string) string, lines []quote.Item) {
	head := func() {
		pdf.SetFont(font, "B", 10)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(cols[0], 7, tr("Descrição"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(cols[1], 7, "Qtd", "1", 0, "C", true, 0, "")
		pdf.CellFormat(cols[2], 7, tr("Unitário"), "1", 0, "R", true, 0, "")
		pdf.CellFormat(cols[3], 7, "Subtotal", "1", 1, "R", true, 0, "")
		pdf.SetFont(font, "", 10)
	}
	head()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, it := range lines {
		label := tr(it.Label())
		rows := pdf.SplitLines([]byte(label), cols[0]-2)
		h := 6 * float64(max(len(rows), 1))
		if pdf.GetY()+h > pageHeight-bottom-10 {
			pdf.AddPage()
			head()
		}

		x, y := pdf.GetXY()
		pdf.MultiCell(cols[0], 6, label, "1", "L", false)
		pdf.SetXY(x+cols[0], y)
		pdf.CellFormat(cols[1], h, tr(format.Quantity(it.Quantity)+" "+it.UnitLabel()), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[2], h, tr(format.Currency(it.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], h, tr(format.Currency(it.Subtotal())), "1", 1, "R", false, 0, "")
	}
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}
