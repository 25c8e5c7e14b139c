package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/siteops-admin/internal/model"
)

const (
	summarySheet = "Quotation"
	itemsHeader  = 9
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(doc model.QuotationDocument) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeQuotation(file, summarySheet, doc); err != nil {
		return nil, err
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeQuotation(file *excelize.File, sheet string, doc model.QuotationDocument) error {
	q := doc.Quotation

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Company")
	set("B1", doc.Company.Name)
	set("A2", "Quotation")
	set("B2", q.Number)
	set("A3", "Title")
	set("B3", q.Title)
	set("A4", "Client")
	set("B4", clientName(q))
	set("A5", "Site")
	set("B5", siteName(q))
	set("A6", "Issue date")
	set("B6", formatDate(q.IssueDate))
	set("A7", "Valid until")
	set("B7", formatDate(q.ValidUntil))

	headers := []string{"#", "Description", "Unit", "Quantity", "Rate", "Area", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, itemsHeader)
		set(cell, header)
	}

	for i, item := range q.Items {
		row := itemsHeader + 1 + i
		set(fmt.Sprintf("A%d", row), item.Position)
		set(fmt.Sprintf("B%d", row), item.Description)
		set(fmt.Sprintf("C%d", row), unitSymbol(item))
		set(fmt.Sprintf("D%d", row), item.Quantity.InexactFloat64())
		set(fmt.Sprintf("E%d", row), item.Rate.InexactFloat64())
		if item.Area.IsPositive() {
			set(fmt.Sprintf("F%d", row), item.Area.InexactFloat64())
		}
		set(fmt.Sprintf("G%d", row), item.Amount.InexactFloat64())
	}

	totalRow := itemsHeader + 1 + len(q.Items)
	set(fmt.Sprintf("F%d", totalRow), "Total")
	set(fmt.Sprintf("G%d", totalRow), q.Total.InexactFloat64())

	if strings.TrimSpace(q.Notes) != "" {
		set(fmt.Sprintf("A%d", totalRow+2), "Notes")
		set(fmt.Sprintf("B%d", totalRow+2), q.Notes)
	}

	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = file.SetCellStyle(sheet, "A1", "A7", style)
		_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", itemsHeader), fmt.Sprintf("G%d", itemsHeader), style)
		_ = file.SetCellStyle(sheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("G%d", totalRow), style)
	}
	if money, err := file.NewStyle(&excelize.Style{NumFmt: 4}); err == nil && len(q.Items) > 0 {
		_ = file.SetCellStyle(sheet, fmt.Sprintf("E%d", itemsHeader+1), fmt.Sprintf("E%d", totalRow-1), money)
		_ = file.SetCellStyle(sheet, fmt.Sprintf("G%d", itemsHeader+1), fmt.Sprintf("G%d", totalRow), money)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 48)
	_ = file.SetColWidth(sheet, "C", "C", 10)
	_ = file.SetColWidth(sheet, "D", "G", 14)
	return nil
}

func clientName(q model.Quotation) string {
	if q.Client == nil {
		return ""
	}
	return q.Client.Name
}

func siteName(q model.Quotation) string {
	if q.Site == nil {
		return ""
	}
	return q.Site.Name
}

func unitSymbol(item model.QuotationItem) string {
	if item.Unit == nil {
		return ""
	}
	return item.Unit.Symbol
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
