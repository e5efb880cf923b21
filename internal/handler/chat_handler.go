package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/middleware"
	"github.com/scootsupport/scootsupport/internal/service"
	"github.com/scootsupport/scootsupport/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// SaveChat 聊天入口，兼容新版中继和旧版直存两种请求形态
// POST /api/v1/chat
func (h *ChatHandler) SaveChat(c *gin.Context) {
	var req chat.SaveChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	userID := middleware.GetUserID(c)

	if req.Legacy() {
		// 旧客户端自带 userId，以令牌身份为准
		resp, err := h.svc.Chat.DirectSave(c.Request.Context(), userID, req.AsDirectSave())
		if err != nil {
			Error(c, err)
			return
		}
		Success(c, resp)
		return
	}

	resp, err := h.svc.Chat.Send(c.Request.Context(), userID, req.AsSend())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

// ListConversations 会话列表
// GET /api/v1/conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conversations, err := h.svc.Chat.ListConversations(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"conversations": conversations})
}

// GetMessages 会话消息
// GET /api/v1/conversations/:id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	conversationID := c.Param("id")

	messages, err := h.svc.Chat.GetMessages(c.Request.Context(), userID, conversationID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"messages": messages})
}
