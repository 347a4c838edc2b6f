package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type ShootsHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewShootsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *ShootsHandler {
	return &ShootsHandler{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// shootToResponse shapes a shoot for the given viewer. Clients get totals
// only; the quote/tax breakdown is withheld.
func shootToResponse(shoot *models.Shoot, role workflow.Role) models.ShootResponse {
	resp := models.ShootResponse{
		ID:                     shoot.ID.String(),
		ClientID:               shoot.ClientID.String(),
		Status:                 string(shoot.Status),
		WorkflowStatus:         string(shoot.Status),
		ScheduledDate:          shoot.ScheduledDate.Format("2006-01-02"),
		ScheduledTime:          shoot.ScheduledTime,
		Address:                shoot.Address,
		City:                   shoot.City,
		State:                  shoot.State,
		Zip:                    shoot.Zip,
		Services:               shoot.Services,
		BracketType:            string(shoot.BracketType),
		ExpectedDeliveredCount: shoot.ExpectedDeliveredCount,
		CreatedAt:              shoot.CreatedAt,
		UpdatedAt:              shoot.UpdatedAt,
	}
	if shoot.PhotographerID.Valid {
		resp.PhotographerID = shoot.PhotographerID.UUID.String()
	}
	if shoot.EditorID.Valid {
		resp.EditorID = shoot.EditorID.UUID.String()
	}
	if shoot.PhotographerNotes.Valid {
		resp.PhotographerNotes = shoot.PhotographerNotes.String
	}
	if shoot.EditingNotes.Valid {
		resp.EditingNotes = shoot.EditingNotes.String
	}

	resp.Payment = models.PaymentBreakdown{
		TotalQuote: shoot.TotalQuote,
		TotalPaid:  shoot.TotalPaid,
	}
	if role != workflow.RoleClient {
		resp.Payment.BaseQuote = shoot.BaseQuote
		resp.Payment.TaxRate = shoot.TaxRate
		resp.Payment.TaxAmount = shoot.TaxAmount
	}
	return resp
}

// CreateShoot godoc
// @Summary     Book a shoot
// @Description Creates a shoot in the initial booked status with its payment snapshot
// @Tags        shoots
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.CreateShootRequest true "Booking"
// @Success     201 {object} models.ShootResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /shoots [post]
func (h *ShootsHandler) CreateShoot(c *gin.Context) {
	_, role, ok := viewer(c)
	if !ok {
		return
	}

	var req models.CreateShootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid client id"})
		return
	}
	if _, err := h.dbClient.GetClient(clientID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "client not found", Message: err.Error()})
		return
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid scheduled_date", Message: "expected YYYY-MM-DD"})
		return
	}

	bracketType := workflow.ThreeBracket
	if req.BracketType != "" {
		bracketType, err = workflow.ParseBracketType(req.BracketType)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid bracket type", Message: err.Error()})
			return
		}
	}

	taxAmount := int64(float64(req.BaseQuote) * req.TaxRate)
	shoot := &models.Shoot{
		ClientID:               clientID,
		Status:                 workflow.Initial,
		ScheduledDate:          scheduledDate,
		ScheduledTime:          req.ScheduledTime,
		Address:                req.Address,
		City:                   req.City,
		State:                  req.State,
		Zip:                    req.Zip,
		Services:               req.Services,
		BracketType:            bracketType,
		ExpectedDeliveredCount: req.ExpectedDeliveredCount,
		BaseQuote:              req.BaseQuote,
		TaxRate:                req.TaxRate,
		TaxAmount:              taxAmount,
		TotalQuote:             req.BaseQuote + taxAmount,
	}
	if shoot.Services == nil {
		shoot.Services = []string{}
	}

	if err := h.dbClient.CreateShoot(shoot); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create shoot", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, shootToResponse(shoot, role))
}

// ListShoots godoc
// @Summary     List shoots
// @Description Lists shoots visible to the caller's role
// @Tags        shoots
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ShootListResponse
// @Router      /shoots [get]
func (h *ShootsHandler) ListShoots(c *gin.Context) {
	userID, role, ok := viewer(c)
	if !ok {
		return
	}

	shoots, err := h.dbClient.ListShoots(role, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list shoots", Message: err.Error()})
		return
	}

	resp := models.ShootListResponse{Shoots: make([]models.ShootResponse, len(shoots))}
	for i := range shoots {
		resp.Shoots[i] = shootToResponse(&shoots[i], role)
	}
	c.JSON(http.StatusOK, resp)
}

// GetShoot godoc
// @Summary     Get a shoot
// @Tags        shoots
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     200 {object} models.ShootResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id} [get]
func (h *ShootsHandler) GetShoot(c *gin.Context) {
	shoot, _, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shootToResponse(shoot, role))
}

// UpdateShoot godoc
// @Summary     Patch a shoot
// @Description Partial update. Status changes accept either "status" or
// @Description "workflowStatus" (they must agree when both are sent) and run
// @Description through the workflow engine, including the unresolved-issue
// @Description guard when leaving review.
// @Tags        shoots
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.UpdateShootRequest true "Fields to update"
// @Success     200 {object} models.ShootResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id} [patch]
func (h *ShootsHandler) UpdateShoot(c *gin.Context) {
	current, _, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}
	shootID := current.ID

	var req models.UpdateShootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	// Legacy clients send status and workflowStatus together.
	statusStr := req.Status
	if statusStr == nil {
		statusStr = req.WorkflowStatus
	} else if req.WorkflowStatus != nil && *req.WorkflowStatus != *statusStr {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "conflicting status fields",
			Message: "status and workflowStatus must match when both are sent",
		})
		return
	}

	if statusStr != nil {
		target, err := workflow.ParseStatus(*statusStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status", Message: err.Error()})
			return
		}
		if err := h.dbClient.TransitionShootStatus(shootID, target, role); err != nil {
			respondWorkflowError(c, err)
			return
		}
		shoot, err := h.dbClient.GetShoot(shootID)
		if err == nil {
			h.realtimeClient.PublishShootEvent(shootID, "status_changed",
				supabase.StatusChangedPayload(shootID, "", string(shoot.Status)))
		}
	}

	hasScheduleFields := req.ScheduledDate != nil || req.ScheduledTime != nil ||
		req.Address != nil || req.Services != nil
	hasNoteFields := req.PhotographerNotes != nil || req.EditingNotes != nil
	if hasScheduleFields || hasNoteFields {
		// Talent may update their notes; rescheduling is admin territory.
		if hasScheduleFields && !role.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "only admins may reschedule a shoot"})
			return
		}
		if err := h.dbClient.UpdateShootFields(shootID, &req); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update shoot", Message: err.Error()})
			return
		}
	}

	shoot, err := h.dbClient.GetShoot(shootID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, shootToResponse(shoot, role))
}

// DeleteShoot godoc
// @Summary     Delete a shoot
// @Description Removes the shoot, its media rows and stored binaries. Admin only.
// @Tags        shoots
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id} [delete]
func (h *ShootsHandler) DeleteShoot(c *gin.Context) {
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteShoot(shootID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found"})
			return
		}
		// Billing rows block deletion; financial history outlives the shoot.
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "shoot cannot be deleted", Message: err.Error()})
		return
	}

	// Best effort: the DB row is gone either way, orphaned objects only
	// cost storage.
	if err := h.storageClient.DeleteShootFiles(shootID); err != nil {
		log.Printf("Warning: failed to delete stored files for shoot %s: %v", shootID, err)
	}

	c.Status(http.StatusNoContent)
}

// AssignShoot godoc
// @Summary     Assign a photographer or editor
// @Tags        shoots
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.AssignRequest true "Assignment"
// @Success     200 {object} models.ShootResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/assign [post]
func (h *ShootsHandler) AssignShoot(c *gin.Context) {
	_, role, ok := viewer(c)
	if !ok {
		return
	}
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if req.PhotographerID == "" && req.EditorID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "photographer_id or editor_id is required"})
		return
	}

	if req.PhotographerID != "" {
		photographerID, err := uuid.Parse(req.PhotographerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photographer id"})
			return
		}
		user, err := h.dbClient.GetUser(photographerID)
		if err != nil || user.Role != workflow.RolePhotographer {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "user is not a photographer"})
			return
		}
		if err := h.dbClient.UpdateShootPhotographerID(shootID, photographerID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to assign photographer", Message: err.Error()})
			return
		}
	}

	if req.EditorID != "" {
		editorID, err := uuid.Parse(req.EditorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid editor id"})
			return
		}
		user, err := h.dbClient.GetUser(editorID)
		if err != nil || user.Role != workflow.RoleEditor {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "user is not an editor"})
			return
		}
		if err := h.dbClient.UpdateShootEditorID(shootID, editorID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to assign editor", Message: err.Error()})
			return
		}
	}

	shoot, err := h.dbClient.GetShoot(shootID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, shootToResponse(shoot, role))
}

// SendToEditing godoc
// @Summary     Send a shoot to editing
// @Description Assigns the editor and moves the shoot to editing in a single
// @Description transaction, so a partial write cannot occur.
// @Tags        shoots
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.SendToEditingRequest true "Editor"
// @Success     200 {object} models.ShootResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/send-to-editing [post]
func (h *ShootsHandler) SendToEditing(c *gin.Context) {
	_, role, ok := viewer(c)
	if !ok {
		return
	}
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	var req models.SendToEditingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	editorID, err := uuid.Parse(req.EditorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid editor id"})
		return
	}

	if err := h.dbClient.SendToEditing(shootID, editorID, role); err != nil {
		respondWorkflowError(c, err)
		return
	}

	h.realtimeClient.PublishShootEvent(shootID, "status_changed",
		supabase.StatusChangedPayload(shootID, string(workflow.StatusRawUploaded), string(workflow.StatusEditing)))
	h.realtimeClient.PublishUserEvent(editorID, "shoot_assigned",
		supabase.StatusChangedPayload(shootID, "", string(workflow.StatusEditing)))

	shoot, err := h.dbClient.GetShoot(shootID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, shootToResponse(shoot, role))
}

// FinalizeShoot godoc
// @Summary     Finalise a shoot
// @Description Delivers a reviewed shoot. Refused with 409 while any open or
// @Description in-progress issue remains.
// @Tags        shoots
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     200 {object} models.ShootResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/finalize [post]
func (h *ShootsHandler) FinalizeShoot(c *gin.Context) {
	_, role, ok := viewer(c)
	if !ok {
		return
	}
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	if err := h.dbClient.FinalizeShoot(shootID, role); err != nil {
		respondWorkflowError(c, err)
		return
	}

	h.realtimeClient.PublishShootEvent(shootID, "status_changed",
		supabase.StatusChangedPayload(shootID, string(workflow.StatusInReview), string(workflow.StatusDelivered)))

	shoot, err := h.dbClient.GetShoot(shootID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, shootToResponse(shoot, role))
}
