package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/siteops-admin/internal/model"
)

func TestGenerateProducesPDF(t *testing.T) {
	q := model.Quotation{
		Number:     "Q-202610-0002",
		Title:      "Loft conversion",
		Status:     model.QuotationStatusSent,
		IssueDate:  time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Notes:      "Skip hire included.",
		Client:     &model.Client{Name: "Café Rénové", ContactPerson: "Zoë"},
		Items: []model.QuotationItem{
			{Position: 1, Description: "Insulation", Quantity: decimal.NewFromInt(40), Rate: decimal.NewFromInt(12)},
		},
	}
	q.Recalculate()

	content, err := NewGenerator("").Generate(model.QuotationDocument{
		Company:   model.Company{Name: "Siteops Ltd", TaxNumber: "GB123"},
		Quotation: q,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestClientLines(t *testing.T) {
	lines := clientLines(model.Quotation{
		Client: &model.Client{Name: "Acme"},
		Site:   &model.Site{Name: "Depot", City: "Leeds", Postcode: "LS1"},
	})
	assert.Equal(t, []string{"Acme", "Site: Depot (Leeds, LS1)"}, lines)
	assert.Equal(t, []string{"-"}, clientLines(model.Quotation{}))
}
