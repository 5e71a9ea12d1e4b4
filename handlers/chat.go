package handlers

import (
	"errors"
	"net/http"

	"voyago/models"
	"voyago/services/recommend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler is the one-route pass-through proxy to the chat-completion
// provider. No business logic lives here.
type ChatHandler struct {
	Gateway recommend.Gateway
}

// NewChatHandler returns a ChatHandler over the given gateway.
func NewChatHandler(gateway recommend.Gateway) *ChatHandler {
	return &ChatHandler{Gateway: gateway}
}

// ChatProxyHandler forwards the message list upstream and returns the
// provider-shaped payload unchanged.
func (h *ChatHandler) ChatProxyHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one message is required"})
		return
	}

	resp, err := h.Gateway.SendRaw(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("Chat proxy call failed", zap.Error(err))
		var gerr *recommend.GatewayError
		if errors.As(err, &gerr) && gerr.Status != 0 {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream provider error", "status": gerr.Status})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach the chat provider"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
