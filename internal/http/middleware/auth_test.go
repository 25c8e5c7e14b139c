package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/siteops-admin/internal/model"
)

type stubParser struct {
	principal model.Principal
	err       error
}

func (p stubParser) Parse(string) (model.Principal, error) {
	return p.principal, p.err
}

func newAuthRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", Auth(parser), func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, principal.CompanyID.String())
	})
	return router
}

func TestAuthStoresPrincipal(t *testing.T) {
	companyID := uuid.New()
	router := newAuthRouter(stubParser{principal: model.Principal{UserID: uuid.New(), CompanyID: companyID, Role: model.UserRoleAdmin}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, companyID.String(), rec.Body.String())
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := newAuthRouter(stubParser{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	router := newAuthRouter(stubParser{err: errors.New("bad")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
