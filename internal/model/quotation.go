package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "DRAFT"
	QuotationStatusSent     QuotationStatus = "SENT"
	QuotationStatusAccepted QuotationStatus = "ACCEPTED"
	QuotationStatusRejected QuotationStatus = "REJECTED"
	QuotationStatusExpired  QuotationStatus = "EXPIRED"
)

var QuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusAccepted,
	QuotationStatusRejected,
	QuotationStatusExpired,
}

func (s QuotationStatus) Valid() bool {
	for _, status := range QuotationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Quotation struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_quotations_company_number" json:"company_id"`
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	SiteID     *uuid.UUID      `gorm:"type:uuid;index" json:"site_id"`
	Site       *Site           `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	ProjectID  *uuid.UUID      `gorm:"type:uuid;index" json:"project_id"`
	Number     string          `gorm:"size:32;not null;uniqueIndex:uq_quotations_company_number" json:"number"`
	Title      string          `gorm:"size:255;not null" json:"title"`
	Status     QuotationStatus `gorm:"size:32;not null" json:"status"`
	IssueDate  time.Time       `gorm:"type:date;not null" json:"issue_date"`
	ValidUntil time.Time       `gorm:"type:date;not null" json:"valid_until"`
	Notes      string          `gorm:"type:text" json:"notes"`
	Total      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total"`
	Items      []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (q *Quotation) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type QuotationItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
	UnitID      *uuid.UUID      `gorm:"type:uuid;index" json:"unit_id"`
	Unit        *Unit           `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Position    int             `gorm:"not null" json:"position"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(18,3);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"rate"`
	Area        decimal.Decimal `gorm:"type:numeric(18,3);not null;default:0" json:"area"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
}

func (i *QuotationItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// LineAmount prices a single quotation line. Area acts as an extra multiplier
// only when it is positive.
func LineAmount(quantity, rate, area decimal.Decimal) decimal.Decimal {
	amount := quantity.Mul(rate)
	if area.IsPositive() {
		amount = amount.Mul(area)
	}
	return amount.Round(2)
}

// Recalculate refreshes every item amount and the quotation total.
func (q *Quotation) Recalculate() {
	total := decimal.Zero
	for i := range q.Items {
		q.Items[i].Amount = LineAmount(q.Items[i].Quantity, q.Items[i].Rate, q.Items[i].Area)
		total = total.Add(q.Items[i].Amount)
	}
	q.Total = total
}

// QuotationDocument is everything needed to render a quotation for the client.
type QuotationDocument struct {
	Company   Company
	Quotation Quotation
}
