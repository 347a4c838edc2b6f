package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type UsersHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewUsersHandler(dbClient *supabase.DatabaseClient) *UsersHandler {
	return &UsersHandler{dbClient: dbClient}
}

func usersToResponse(users []models.User) models.UsersResponse {
	resp := models.UsersResponse{Users: make([]models.UserResponse, len(users))}
	for i, u := range users {
		resp.Users[i] = models.UserResponse{
			ID:    u.ID.String(),
			Email: u.Email,
			Name:  u.Name,
			Role:  string(u.Role),
		}
	}
	return resp
}

// ListPhotographers godoc
// @Summary     List photographers
// @Description Lists photographer accounts for shoot assignment.
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UsersResponse
// @Router      /users/photographers [get]
func (h *UsersHandler) ListPhotographers(c *gin.Context) {
	users, err := h.dbClient.ListUsersByRole(workflow.RolePhotographer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list photographers", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, usersToResponse(users))
}

// ListEditors godoc
// @Summary     List editors
// @Description Lists editor accounts for send-to-editing assignment.
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UsersResponse
// @Router      /users/editors [get]
func (h *UsersHandler) ListEditors(c *gin.Context) {
	users, err := h.dbClient.ListUsersByRole(workflow.RoleEditor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list editors", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, usersToResponse(users))
}
