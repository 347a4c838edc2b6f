package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type ClientsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewClientsHandler(dbClient *supabase.DatabaseClient) *ClientsHandler {
	return &ClientsHandler{dbClient: dbClient}
}

func clientToResponse(client *models.Client) models.ClientResponse {
	resp := models.ClientResponse{
		ID:        client.ID.String(),
		Name:      client.Name,
		Email:     client.Email,
		CreatedAt: client.CreatedAt,
	}
	if client.UserID.Valid {
		resp.UserID = client.UserID.UUID.String()
	}
	if client.Phone.Valid {
		resp.Phone = client.Phone.String
	}
	if client.Company.Valid {
		resp.Company = client.Company.String
	}
	return resp
}

// portalUserID validates the user_id a client record links to: the account
// must exist and carry the client role. Shoot visibility for logged-in
// clients pivots on this link.
func (h *ClientsHandler) portalUserID(c *gin.Context, raw string) (uuid.NullUUID, bool) {
	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.NullUUID{}, false
	}
	user, err := h.dbClient.GetUser(userID)
	if err != nil || user.Role != workflow.RoleClient {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "user is not a client account"})
		return uuid.NullUUID{}, false
	}
	return uuid.NullUUID{UUID: userID, Valid: true}, true
}

// CreateClient godoc
// @Summary     Create a client record
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.CreateClientRequest true "Client"
// @Success     201 {object} models.ClientResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /clients [post]
func (h *ClientsHandler) CreateClient(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	client := &models.Client{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.UserID != "" {
		userID, ok := h.portalUserID(c, req.UserID)
		if !ok {
			return
		}
		client.UserID = userID
	}
	if req.Phone != "" {
		client.Phone = sql.NullString{String: req.Phone, Valid: true}
	}
	if req.Company != "" {
		client.Company = sql.NullString{String: req.Company, Valid: true}
	}

	if err := h.dbClient.CreateClient(client); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create client", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, clientToResponse(client))
}

// ListClients godoc
// @Summary     List clients
// @Tags        clients
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ClientsResponse
// @Router      /clients [get]
func (h *ClientsHandler) ListClients(c *gin.Context) {
	clients, err := h.dbClient.ListClients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list clients", Message: err.Error()})
		return
	}

	resp := models.ClientsResponse{Clients: make([]models.ClientResponse, len(clients))}
	for i := range clients {
		resp.Clients[i] = clientToResponse(&clients[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetClient godoc
// @Summary     Get a client
// @Tags        clients
// @Produce     json
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Success     200 {object} models.ClientResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /clients/{client_id} [get]
func (h *ClientsHandler) GetClient(c *gin.Context) {
	clientID, ok := pathUUID(c, "client_id")
	if !ok {
		return
	}

	client, err := h.dbClient.GetClient(clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "client not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, clientToResponse(client))
}

// UpdateClient godoc
// @Summary     Update a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Param       body body models.UpdateClientRequest true "Fields to update"
// @Success     200 {object} models.ClientResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /clients/{client_id} [patch]
func (h *ClientsHandler) UpdateClient(c *gin.Context) {
	clientID, ok := pathUUID(c, "client_id")
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if req.UserID != nil {
		if _, ok := h.portalUserID(c, *req.UserID); !ok {
			return
		}
	}

	if err := h.dbClient.UpdateClient(clientID, &req); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "client not found", Message: err.Error()})
		return
	}

	client, err := h.dbClient.GetClient(clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "client not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, clientToResponse(client))
}

// DeleteClient godoc
// @Summary     Delete a client
// @Tags        clients
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Router      /clients/{client_id} [delete]
func (h *ClientsHandler) DeleteClient(c *gin.Context) {
	clientID, ok := pathUUID(c, "client_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteClient(clientID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "client not found", Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
