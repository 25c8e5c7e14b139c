package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/service"
)

type quotationItemRequest struct {
	UnitID      *uuid.UUID      `json:"unit_id"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Area        decimal.Decimal `json:"area"`
}

type quotationRequest struct {
	ClientID   uuid.UUID              `json:"client_id"`
	SiteID     *uuid.UUID             `json:"site_id"`
	ProjectID  *uuid.UUID             `json:"project_id"`
	Title      string                 `json:"title" binding:"required"`
	IssueDate  *string                `json:"issue_date"`
	ValidUntil *string                `json:"valid_until"`
	Notes      string                 `json:"notes"`
	Items      []quotationItemRequest `json:"items" binding:"dive"`
}

func (r quotationRequest) input() (service.QuotationInput, error) {
	issue, err := parseOptionalDate(r.IssueDate)
	if err != nil {
		return service.QuotationInput{}, err
	}
	validUntil, err := parseOptionalDate(r.ValidUntil)
	if err != nil {
		return service.QuotationInput{}, err
	}

	items := make([]service.QuotationItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.QuotationItemInput{
			UnitID:      item.UnitID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Area:        item.Area,
		})
	}

	return service.QuotationInput{
		ClientID:   r.ClientID,
		SiteID:     r.SiteID,
		ProjectID:  r.ProjectID,
		Title:      r.Title,
		IssueDate:  issue,
		ValidUntil: validUntil,
		Notes:      r.Notes,
		Items:      items,
	}, nil
}

type quotationStatusRequest struct {
	Status model.QuotationStatus `json:"status" binding:"required,quotation_status"`
}

func (h *Handler) listQuotations(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c, "client_id", "site_id", "project_id", "status")
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Quotations.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getQuotation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	quotation, err := h.services.Quotations.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotation)
}

func (h *Handler) createQuotation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req quotationRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	quotation, err := h.services.Quotations.Create(c.Request.Context(), p, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quotation)
}

func (h *Handler) updateQuotation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req quotationRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	quotation, err := h.services.Quotations.Update(c.Request.Context(), p, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotation)
}

func (h *Handler) deleteQuotation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Quotations.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) changeQuotationStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req quotationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	quotation, err := h.services.Quotations.ChangeStatus(c.Request.Context(), p, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotation)
}

func (h *Handler) exportQuotationPDF(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.services.Quotations.ExportPDF(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeExport(c, result)
}

func (h *Handler) exportQuotationXLSX(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.services.Quotations.ExportXLSX(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeExport(c, result)
}
