package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/service"
)

type projectRequest struct {
	SiteID      uuid.UUID           `json:"site_id"`
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Status      model.ProjectStatus `json:"status" binding:"omitempty,project_status"`
	StartDate   *string             `json:"start_date"`
	EndDate     *string             `json:"end_date"`
	Budget      decimal.Decimal     `json:"budget"`
}

func (r projectRequest) input() (service.ProjectInput, error) {
	start, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return service.ProjectInput{}, err
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return service.ProjectInput{}, err
	}
	return service.ProjectInput{
		SiteID:      r.SiteID,
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		StartDate:   start,
		EndDate:     end,
		Budget:      r.Budget,
	}, nil
}

type assignContractorsRequest struct {
	ContractorIDs []uuid.UUID `json:"contractor_ids"`
}

func (h *Handler) listProjects(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c, "site_id", "status")
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Projects.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := h.services.Projects.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) createProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	project, err := h.services.Projects.Create(c.Request.Context(), p, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) updateProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	project, err := h.services.Projects.Update(c.Request.Context(), p, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) deleteProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Projects.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) assignContractors(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignContractorsRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.services.Projects.AssignContractors(c.Request.Context(), p, id, req.ContractorIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

type taskRequest struct {
	ContractorID *uuid.UUID         `json:"contractor_id"`
	Title        string             `json:"title" binding:"required"`
	Description  string             `json:"description"`
	Status       model.TaskStatus   `json:"status" binding:"omitempty,task_status"`
	Priority     model.TaskPriority `json:"priority" binding:"omitempty,task_priority"`
	DueDate      *string            `json:"due_date"`
}

func (r taskRequest) input() (service.TaskInput, error) {
	due, err := parseOptionalDate(r.DueDate)
	if err != nil {
		return service.TaskInput{}, err
	}
	return service.TaskInput{
		ContractorID: r.ContractorID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		Priority:     r.Priority,
		DueDate:      due,
	}, nil
}

func (h *Handler) listTasks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	params, err := h.listParams(c, "status", "priority", "contractor_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Tasks.ListByProject(c.Request.Context(), p, projectID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) createTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	task, err := h.services.Tasks.Create(c.Request.Context(), p, projectID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) getTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.services.Tasks.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) updateTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	task, err := h.services.Tasks.Update(c.Request.Context(), p, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) deleteTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Tasks.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createUpdateRequest struct {
	Body      string `json:"body" binding:"required"`
	Summarize bool   `json:"summarize"`
}

type summarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) listUpdates(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	params, err := h.listParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Updates.List(c.Request.Context(), p, projectID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) createUpdate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	update, err := h.services.Updates.Create(c.Request.Context(), p, projectID, service.CreateUpdateInput{
		Body:      req.Body,
		Summarize: req.Summarize,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

func (h *Handler) summarizeUpdate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	updateID, ok := pathID(c, "updateId")
	if !ok {
		return
	}
	update, err := h.services.Updates.Summarize(c.Request.Context(), p, projectID, updateID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *Handler) summarizeText(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req summarizeRequest
	if !bindJSON(c, &req) {
		return
	}
	summary, err := h.services.Updates.SummarizeText(c.Request.Context(), p, req.Text)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
