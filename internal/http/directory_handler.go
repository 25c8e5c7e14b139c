package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/siteops-admin/internal/service"
)

type clientRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Notes         string `json:"notes"`
}

func (r clientRequest) input() service.ClientInput {
	return service.ClientInput{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		ContactPerson: r.ContactPerson,
		Notes:         r.Notes,
	}
}

func (h *Handler) listClients(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Clients.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getClient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.services.Clients.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) createClient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req clientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.services.Clients.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req clientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.services.Clients.Update(c.Request.Context(), p, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Clients.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type siteRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name" binding:"required"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Postcode string    `json:"postcode"`
	Notes    string    `json:"notes"`
}

func (r siteRequest) input() service.SiteInput {
	return service.SiteInput{
		ClientID: r.ClientID,
		Name:     r.Name,
		Address:  r.Address,
		City:     r.City,
		Postcode: r.Postcode,
		Notes:    r.Notes,
	}
}

func (h *Handler) listSites(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c, "client_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Sites.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getSite(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	site, err := h.services.Sites.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *Handler) createSite(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req siteRequest
	if !bindJSON(c, &req) {
		return
	}
	site, err := h.services.Sites.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, site)
}

func (h *Handler) updateSite(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req siteRequest
	if !bindJSON(c, &req) {
		return
	}
	site, err := h.services.Sites.Update(c.Request.Context(), p, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *Handler) deleteSite(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Sites.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type contractorRequest struct {
	Name       string          `json:"name" binding:"required"`
	Trade      string          `json:"trade"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Phone      string          `json:"phone"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Notes      string          `json:"notes"`
}

func (r contractorRequest) input() service.ContractorInput {
	return service.ContractorInput{
		Name:       r.Name,
		Trade:      r.Trade,
		Email:      r.Email,
		Phone:      r.Phone,
		HourlyRate: r.HourlyRate,
		Notes:      r.Notes,
	}
}

func (h *Handler) listContractors(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c, "trade")
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Contractors.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getContractor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contractor, err := h.services.Contractors.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractor)
}

func (h *Handler) createContractor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req contractorRequest
	if !bindJSON(c, &req) {
		return
	}
	contractor, err := h.services.Contractors.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contractor)
}

func (h *Handler) updateContractor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req contractorRequest
	if !bindJSON(c, &req) {
		return
	}
	contractor, err := h.services.Contractors.Update(c.Request.Context(), p, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractor)
}

func (h *Handler) deleteContractor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Contractors.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type unitRequest struct {
	Name   string `json:"name" binding:"required"`
	Symbol string `json:"symbol" binding:"required"`
}

func (h *Handler) listUnits(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Units.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	unit, err := h.services.Units.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *Handler) createUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req unitRequest
	if !bindJSON(c, &req) {
		return
	}
	unit, err := h.services.Units.Create(c.Request.Context(), p, service.UnitInput{Name: req.Name, Symbol: req.Symbol})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (h *Handler) updateUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req unitRequest
	if !bindJSON(c, &req) {
		return
	}
	unit, err := h.services.Units.Update(c.Request.Context(), p, id, service.UnitInput{Name: req.Name, Symbol: req.Symbol})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *Handler) deleteUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Units.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
