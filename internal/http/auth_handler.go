package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        model.User `json:"user"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        result.User,
	})
}

func (h *Handler) me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.services.Auth.Me(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type companyRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	TaxNumber string `json:"tax_number"`
}

func (h *Handler) getCompany(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	company, err := h.services.Company.Get(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) updateCompany(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req companyRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.services.Company.Update(c.Request.Context(), p, service.CompanyInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		TaxNumber: req.TaxNumber,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type userRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Name     string         `json:"name"`
	Password string         `json:"password" binding:"required"`
	Role     model.UserRole `json:"role" binding:"omitempty,user_role"`
}

func (h *Handler) listUsers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, err := h.listParams(c, "role")
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := h.services.Company.ListUsers(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) createUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.services.Company.CreateUser(c.Request.Context(), p, service.UserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Company.DeleteUser(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) dashboard(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dashboard, err := h.services.Dashboard.Get(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
