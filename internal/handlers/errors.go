package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shootflow-backend/internal/middleware"
	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

// respondWorkflowError maps workflow engine errors onto HTTP statuses:
// unknown input is the caller's fault, a role problem is forbidden, and a
// blocked or illegal transition is a conflict with current state.
func respondWorkflowError(c *gin.Context, err error) {
	var blocked *workflow.IssuesBlockError
	switch {
	case errors.As(err, &blocked):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "unresolved issues block this transition",
			Message: blocked.Error(),
		})
	case errors.Is(err, workflow.ErrRoleNotAllowed):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "not allowed",
			Message: err.Error(),
		})
	case errors.Is(err, workflow.ErrIllegalTransition):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "illegal status transition",
			Message: err.Error(),
		})
	case errors.Is(err, workflow.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown status",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "transition failed",
			Message: err.Error(),
		})
	}
}

// viewer pulls the authenticated user id and role set by AuthMiddleware.
func viewer(c *gin.Context) (uuid.UUID, workflow.Role, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, "", false
	}

	role := middleware.ViewerRole(c)
	if role == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "role not found"})
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// visibleShoot resolves the shoot named in the path under the same role
// visibility the shoot list applies. An out-of-scope shoot answers 404, so
// the caller cannot tell it apart from a missing one.
func visibleShoot(c *gin.Context, db *supabase.DatabaseClient) (*models.Shoot, uuid.UUID, workflow.Role, bool) {
	userID, role, ok := viewer(c)
	if !ok {
		return nil, uuid.Nil, "", false
	}
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return nil, uuid.Nil, "", false
	}
	shoot, err := db.GetShootForViewer(shootID, role, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found"})
		return nil, uuid.Nil, "", false
	}
	return shoot, userID, role, true
}

func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
