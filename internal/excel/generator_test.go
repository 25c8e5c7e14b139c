package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/siteops-admin/internal/model"
)

func sampleDocument() model.QuotationDocument {
	q := model.Quotation{
		Number:     "Q-202610-0001",
		Title:      "Kitchen extension",
		Status:     model.QuotationStatusDraft,
		IssueDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		Client:     &model.Client{Name: "Acme Homes"},
		Site:       &model.Site{Name: "12 High Street"},
		Items: []model.QuotationItem{
			{Position: 1, Description: "Screed", Unit: &model.Unit{Symbol: "m2"},
				Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(15), Area: decimal.NewFromInt(10)},
			{Position: 2, Description: "Labour", Quantity: decimal.NewFromInt(8), Rate: decimal.RequireFromString("32.50")},
		},
	}
	q.Recalculate()
	return model.QuotationDocument{Company: model.Company{Name: "Siteops Ltd"}, Quotation: q}
}

func TestGenerateWritesItemsAndTotal(t *testing.T) {
	content, err := NewGenerator().Generate(sampleDocument())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	number, err := file.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Q-202610-0001", number)

	client, _ := file.GetCellValue(summarySheet, "B4")
	assert.Equal(t, "Acme Homes", client)

	desc, _ := file.GetCellValue(summarySheet, "B10")
	assert.Equal(t, "Screed", desc)
	unit, _ := file.GetCellValue(summarySheet, "C10")
	assert.Equal(t, "m2", unit)

	label, _ := file.GetCellValue(summarySheet, "F12")
	assert.Equal(t, "Total", label)
	total, err := file.GetCellValue(summarySheet, "G12", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "560", total)
}
