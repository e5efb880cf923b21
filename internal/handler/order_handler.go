package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/middleware"
	"github.com/scootsupport/scootsupport/internal/service"
	"github.com/scootsupport/scootsupport/internal/service/order"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	svc *service.Services
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(svc *service.Services) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create 创建订单
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req order.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "model is required")
		return
	}

	userID := middleware.GetUserID(c)

	o, err := h.svc.Order.Create(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, o)
}

// ListMine 当前用户的订单
// GET /api/v1/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orders, err := h.svc.Order.ListForUser(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"orders": orders})
}

// ListAll 全部订单，管理端用
// GET /api/v1/admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.svc.Order.List(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"orders": orders})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新订单状态
// PUT /api/v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "status is required")
		return
	}

	o, err := h.svc.Order.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, o)
}
