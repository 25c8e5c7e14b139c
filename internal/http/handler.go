package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/siteops-admin/internal/config"
	"github.com/nurpe/siteops-admin/internal/http/middleware"
	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/service"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Auth        *service.AuthService
	Company     *service.CompanyService
	Clients     *service.ClientService
	Sites       *service.SiteService
	Contractors *service.ContractorService
	Projects    *service.ProjectService
	Tasks       *service.TaskService
	Units       *service.UnitService
	Quotations  *service.QuotationService
	Updates     *service.UpdateService
	Dashboard   *service.DashboardService
}

type Handler struct {
	services   Services
	pagination config.PaginationConfig
	health     HealthChecker
	log        zerolog.Logger
}

func NewHandler(services Services, pagination config.PaginationConfig, health HealthChecker, log zerolog.Logger) *Handler {
	return &Handler{services: services, pagination: pagination, health: health, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.healthz)
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/auth/me", h.me)

	protected.GET("/company", h.getCompany)
	protected.PUT("/company", h.updateCompany)
	protected.GET("/users", h.listUsers)
	protected.POST("/users", h.createUser)
	protected.DELETE("/users/:id", h.deleteUser)

	protected.GET("/dashboard", h.dashboard)

	protected.GET("/clients", h.listClients)
	protected.POST("/clients", h.createClient)
	protected.GET("/clients/:id", h.getClient)
	protected.PUT("/clients/:id", h.updateClient)
	protected.DELETE("/clients/:id", h.deleteClient)

	protected.GET("/sites", h.listSites)
	protected.POST("/sites", h.createSite)
	protected.GET("/sites/:id", h.getSite)
	protected.PUT("/sites/:id", h.updateSite)
	protected.DELETE("/sites/:id", h.deleteSite)

	protected.GET("/contractors", h.listContractors)
	protected.POST("/contractors", h.createContractor)
	protected.GET("/contractors/:id", h.getContractor)
	protected.PUT("/contractors/:id", h.updateContractor)
	protected.DELETE("/contractors/:id", h.deleteContractor)

	protected.GET("/projects", h.listProjects)
	protected.POST("/projects", h.createProject)
	protected.GET("/projects/:id", h.getProject)
	protected.PUT("/projects/:id", h.updateProject)
	protected.DELETE("/projects/:id", h.deleteProject)
	protected.PUT("/projects/:id/contractors", h.assignContractors)
	protected.GET("/projects/:id/tasks", h.listTasks)
	protected.POST("/projects/:id/tasks", h.createTask)
	protected.GET("/projects/:id/updates", h.listUpdates)
	protected.POST("/projects/:id/updates", h.createUpdate)
	protected.POST("/projects/:id/updates/:updateId/summarize", h.summarizeUpdate)

	protected.GET("/tasks/:id", h.getTask)
	protected.PUT("/tasks/:id", h.updateTask)
	protected.DELETE("/tasks/:id", h.deleteTask)

	protected.GET("/units", h.listUnits)
	protected.POST("/units", h.createUnit)
	protected.GET("/units/:id", h.getUnit)
	protected.PUT("/units/:id", h.updateUnit)
	protected.DELETE("/units/:id", h.deleteUnit)

	protected.GET("/quotations", h.listQuotations)
	protected.POST("/quotations", h.createQuotation)
	protected.GET("/quotations/:id", h.getQuotation)
	protected.PUT("/quotations/:id", h.updateQuotation)
	protected.DELETE("/quotations/:id", h.deleteQuotation)
	protected.POST("/quotations/:id/status", h.changeQuotationStatus)
	protected.GET("/quotations/:id/export.pdf", h.exportQuotationPDF)
	protected.GET("/quotations/:id/export.xlsx", h.exportQuotationXLSX)

	protected.POST("/summaries", h.summarizeText)
}

func (h *Handler) healthz(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// principal returns the authenticated caller or writes 401.
func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return p, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func writeExport(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSummarizerUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
