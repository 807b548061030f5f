package handlers

import (
	"net/http"

	"telecare/services/chat"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the per-session chat history endpoints.
type ChatHandler struct {
	Chat chat.ChatService
}

// PostMessageHandler handles POST /api/sessions/:id/messages. The sender is
// the authenticated caller; the message fans out to the session's relay room
// after it is persisted.
func (h *ChatHandler) PostMessageHandler(c *gin.Context) {
	var req struct {
		Text       string `json:"text" binding:"required"`
		SenderName string `json:"senderName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Chat.Post(c.Param("id"), c.GetString("userID"), req.SenderName, req.Text)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessagesHandler handles GET /api/sessions/:id/messages. Messages come
// back in ascending timestamp order for history repaint.
func (h *ChatHandler) ListMessagesHandler(c *gin.Context) {
	msgs, err := h.Chat.List(c.Param("id"))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// DeleteMessageHandler handles DELETE /api/messages/:id. Only the sender, a
// doctor or an admin may delete a message.
func (h *ChatHandler) DeleteMessageHandler(c *gin.Context) {
	err := h.Chat.Delete(c.Param("id"), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

// respondChatError maps typed chat errors to HTTP statuses.
func respondChatError(c *gin.Context, err error) {
	switch {
	case chat.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case chat.IsUnauthorized(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case chat.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error("Chat operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
