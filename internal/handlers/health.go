package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status of the API
// @Tags        health
// @Accept      json
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

// ReadyHandler reports readiness, including database reachability.
func ReadyHandler(dbClient *supabase.DatabaseClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dbClient == nil || dbClient.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ready"})
	}
}
