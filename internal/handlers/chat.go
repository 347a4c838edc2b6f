package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shootflow-backend/internal/assistant"
	"shootflow-backend/internal/models"
)

type ChatHandler struct {
	assistantClient *assistant.Client
}

func NewChatHandler(assistantClient *assistant.Client) *ChatHandler {
	return &ChatHandler{assistantClient: assistantClient}
}

// Chat godoc
// @Summary     Ask the scheduling assistant
// @Description Proxies a message to the configured assistant API. Returns 503
// @Description when no assistant is configured.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.ChatRequest true "Message"
// @Success     200 {object} models.ChatResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	if !h.assistantClient.Enabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "assistant not configured"})
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	var reply string
	err := h.assistantClient.RetryWithBackoff(func() error {
		var completeErr error
		reply, completeErr = h.assistantClient.Complete(req.Message)
		return completeErr
	}, 3)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "assistant request failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}
