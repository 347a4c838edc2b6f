package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
)

type AvailabilityHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewAvailabilityHandler(dbClient *supabase.DatabaseClient) *AvailabilityHandler {
	return &AvailabilityHandler{dbClient: dbClient}
}

func availabilityToResponse(a *models.Availability) models.AvailabilityResponse {
	resp := models.AvailabilityResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Day:       a.Day.Format("2006-01-02"),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	}
	if a.Note.Valid {
		resp.Note = a.Note.String
	}
	return resp
}

// CreateAvailability godoc
// @Summary     Add an availability slot
// @Description Photographers and editors publish the windows they can take
// @Description work in.
// @Tags        availability
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.CreateAvailabilityRequest true "Slot"
// @Success     201 {object} models.AvailabilityResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /availability [post]
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	userID, _, ok := viewer(c)
	if !ok {
		return
	}

	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid day", Message: "expected YYYY-MM-DD"})
		return
	}
	if req.EndTime <= req.StartTime {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "end_time must be after start_time"})
		return
	}

	slot := &models.Availability{
		UserID:    userID,
		Day:       day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Note != "" {
		slot.Note = sql.NullString{String: req.Note, Valid: true}
	}

	if err := h.dbClient.CreateAvailability(slot); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create availability", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, availabilityToResponse(slot))
}

// ListAvailability godoc
// @Summary     List availability slots
// @Description Staff see their own upcoming slots; admins see everyone's.
// @Tags        availability
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AvailabilityListResponse
// @Router      /availability [get]
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	userID, role, ok := viewer(c)
	if !ok {
		return
	}

	filterID := userID
	if role.IsAdmin() {
		filterID = uuid.Nil
	}

	slots, err := h.dbClient.ListAvailability(filterID, time.Now().Truncate(24*time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list availability", Message: err.Error()})
		return
	}

	resp := models.AvailabilityListResponse{Availability: make([]models.AvailabilityResponse, len(slots))}
	for i := range slots {
		resp.Availability[i] = availabilityToResponse(&slots[i])
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteAvailability godoc
// @Summary     Remove an availability slot
// @Description Users may only remove their own slots.
// @Tags        availability
// @Security    Bearer
// @Param       slot_id path string true "Slot ID (UUID)"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Router      /availability/{slot_id} [delete]
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	userID, _, ok := viewer(c)
	if !ok {
		return
	}
	slotID, ok := pathUUID(c, "slot_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteAvailability(slotID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "availability slot not found", Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
