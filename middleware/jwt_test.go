package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("role", role)
		})
		r.DELETE("/fees/1", RequireRole(models.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	call := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/fees/1", nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call(router(models.RoleAdmin)))
	assert.Equal(t, http.StatusForbidden, call(router(models.RoleAccountant)))
	assert.Equal(t, http.StatusForbidden, call(router("")))
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", models.RoleLeader)
	})
	r.POST("/vehicles", RequireRole(models.RoleAdmin, models.RoleLeader), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vehicles", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
