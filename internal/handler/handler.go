package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth       *AuthHandler
	Chat       *ChatHandler
	FAQ        *FAQHandler
	Escalation *EscalationHandler
	Order      *OrderHandler

	svc *service.Services
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc),
		Chat:       NewChatHandler(svc),
		FAQ:        NewFAQHandler(svc),
		Escalation: NewEscalationHandler(svc),
		Order:      NewOrderHandler(svc),
		svc:        svc,
	}
}

// Health 健康检查
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"app":     h.svc.Config.App.Name,
		"version": h.svc.Config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
