package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestLineAmount(t *testing.T) {
	cases := []struct {
		name     string
		quantity string
		rate     string
		area     string
		want     string
	}{
		{name: "without area", quantity: "3", rate: "12.50", area: "0", want: "37.5"},
		{name: "with area", quantity: "2", rate: "10", area: "4.5", want: "90"},
		{name: "negative area ignored", quantity: "2", rate: "10", area: "-1", want: "20"},
		{name: "rounded to cents", quantity: "1.333", rate: "3", area: "0", want: "4"},
		{name: "zero quantity", quantity: "0", rate: "99", area: "5", want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LineAmount(dec(tc.quantity), dec(tc.rate), dec(tc.area))
			assert.True(t, got.Equal(dec(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestQuotationRecalculate(t *testing.T) {
	q := &Quotation{
		Total: dec("999"),
		Items: []QuotationItem{
			{Quantity: dec("2"), Rate: dec("100"), Amount: dec("1")},
			{Quantity: dec("1"), Rate: dec("50"), Area: dec("3")},
		},
	}

	q.Recalculate()

	assert.True(t, q.Items[0].Amount.Equal(dec("200")))
	assert.True(t, q.Items[1].Amount.Equal(dec("150")))
	assert.True(t, q.Total.Equal(dec("350")))
}

func TestQuotationRecalculateEmpty(t *testing.T) {
	q := &Quotation{Total: dec("10")}
	q.Recalculate()
	assert.True(t, q.Total.IsZero())
}

func TestNewPage(t *testing.T) {
	page := NewPage[int](nil, 41, ListParams{Page: 2, PageSize: 20})

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.NotNil(t, page.Items)
	assert.Len(t, page.Items, 0)
}

func TestListParamsOffset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 40, ListParams{Page: 3, PageSize: 20}.Offset())
}
