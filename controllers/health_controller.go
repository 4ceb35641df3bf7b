package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheckController answers liveness probes.
type HealthCheckController struct{}

// NewHealthCheckController creates a health check controller.
func NewHealthCheckController() *HealthCheckController {
	return &HealthCheckController{}
}

// Ping godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /ping [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}
