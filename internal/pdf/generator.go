package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/nurpe/siteops-admin/internal/model"
)

const fontName = "Helvetica"

// Generator renders quotations with the core PDF fonts. Text is translated to
// cp1252 so currency signs and accented names survive.
type Generator struct {
	currency string
}

func NewGenerator(currency string) *Generator {
	if strings.TrimSpace(currency) == "" {
		currency = "£"
	}
	return &Generator{currency: currency}
}

func (g *Generator) Generate(doc model.QuotationDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	q := doc.Quotation

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 9, tr(safeValue(doc.Company.Name)), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 9)
	for _, line := range companyLines(doc.Company) {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Quotation %s", q.Number)), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, tr(q.Title), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s    Valid until: %s    Status: %s",
		formatDate(q.IssueDate), formatDate(q.ValidUntil), q.Status), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Prepared for", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, line := range clientLines(q) {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFillColor(235, 235, 235)
	headers := []string{"#", "Description", "Unit", "Qty", "Rate", "Area", "Amount"}
	widths := []float64{8, 72, 16, 20, 22, 20, 22}
	drawTableRow(pdf, tr, headers, widths, true)

	for _, item := range q.Items {
		drawTableRow(pdf, tr, []string{
			fmt.Sprintf("%d", item.Position),
			item.Description,
			unitSymbol(item),
			item.Quantity.StringFixed(3),
			g.money(item.Rate),
			formatArea(item.Area),
			g.money(item.Amount),
		}, widths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total: %s", g.money(q.Total))), "", 1, "R", false, 0, "")

	if strings.TrimSpace(q.Notes) != "" {
		pdf.Ln(3)
		pdf.SetFont(fontName, "B", 11)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 5, tr(q.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) money(value decimal.Decimal) string {
	return g.currency + value.StringFixed(2)
}

func companyLines(company model.Company) []string {
	var lines []string
	for _, value := range []string{company.Address, company.Phone, company.Email} {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, value)
		}
	}
	if strings.TrimSpace(company.TaxNumber) != "" {
		lines = append(lines, "Tax no: "+company.TaxNumber)
	}
	return lines
}

func clientLines(q model.Quotation) []string {
	lines := []string{}
	if q.Client != nil {
		lines = append(lines, q.Client.Name)
		if q.Client.ContactPerson != "" {
			lines = append(lines, "Attn: "+q.Client.ContactPerson)
		}
	}
	if q.Site != nil {
		site := q.Site.Name
		address := strings.TrimSpace(strings.Join(nonEmpty(q.Site.Address, q.Site.City, q.Site.Postcode), ", "))
		if address != "" {
			site += " (" + address + ")"
		}
		lines = append(lines, "Site: "+site)
	}
	if len(lines) == 0 {
		lines = append(lines, "-")
	}
	return lines
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 2 {
			align = "R"
		}
		text := tr(col)
		for len(text) > 1 && pdf.GetStringWidth(text) > widths[i]-2 {
			text = text[:len(text)-1]
		}
		pdf.CellFormat(widths[i], 7, text, "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

func unitSymbol(item model.QuotationItem) string {
	if item.Unit == nil {
		return ""
	}
	return item.Unit.Symbol
}

func formatArea(area decimal.Decimal) string {
	if !area.IsPositive() {
		return ""
	}
	return area.StringFixed(3)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, strings.TrimSpace(value))
		}
	}
	return out
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
