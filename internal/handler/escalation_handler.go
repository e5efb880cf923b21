package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/middleware"
	"github.com/scootsupport/scootsupport/internal/service"
	"github.com/scootsupport/scootsupport/internal/service/escalation"
)

// EscalationHandler 工单处理器
type EscalationHandler struct {
	svc *service.Services
}

// NewEscalationHandler 创建工单处理器
func NewEscalationHandler(svc *service.Services) *EscalationHandler {
	return &EscalationHandler{svc: svc}
}

// Submit 提交升级工单
// POST /api/v1/escalations
func (h *EscalationHandler) Submit(c *gin.Context) {
	var req escalation.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "conversationId, originalQuestion and aiResponse are required")
		return
	}

	userID := middleware.GetUserID(c)

	resp, err := h.svc.Escalation.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, resp)
}

// List 工单列表，可按状态过滤
// GET /api/v1/escalations?status=pending
func (h *EscalationHandler) List(c *gin.Context) {
	items, err := h.svc.Escalation.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"escalations": items})
}

type updateEscalationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新工单状态
// PUT /api/v1/escalations/:id/status
func (h *EscalationHandler) UpdateStatus(c *gin.Context) {
	var req updateEscalationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "status is required")
		return
	}

	item, err := h.svc.Escalation.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, item)
}
