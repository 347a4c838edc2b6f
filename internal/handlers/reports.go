package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
)

type ReportsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewReportsHandler(dbClient *supabase.DatabaseClient) *ReportsHandler {
	return &ReportsHandler{dbClient: dbClient}
}

// Summary godoc
// @Summary     Production and billing overview
// @Description Shoot counts by status, open issue count, quoted versus
// @Description collected totals and this week's shoot count. Admin only.
// @Tags        reports
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ReportSummaryResponse
// @Router      /reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	summary, err := h.dbClient.ReportSummary(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to build report", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
