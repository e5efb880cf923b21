package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/service"
	"github.com/scootsupport/scootsupport/internal/service/faq"
)

// FAQHandler FAQ处理器
type FAQHandler struct {
	svc *service.Services
}

// NewFAQHandler 创建FAQ处理器
func NewFAQHandler(svc *service.Services) *FAQHandler {
	return &FAQHandler{svc: svc}
}

// ListActive 启用中的FAQ列表，客户端展示用
// GET /api/v1/faqs
func (h *FAQHandler) ListActive(c *gin.Context) {
	faqs, err := h.svc.FAQ.ListActiveFAQs(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"faqs": faqs})
}

// ListAll 全部FAQ列表，管理端用
// GET /api/v1/faqs/all
func (h *FAQHandler) ListAll(c *gin.Context) {
	faqs, err := h.svc.FAQ.ListFAQs(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"faqs": faqs})
}

// Get 单条FAQ
// GET /api/v1/faqs/:id
func (h *FAQHandler) Get(c *gin.Context) {
	item, err := h.svc.FAQ.GetFAQ(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, item)
}

// Create 创建FAQ
// POST /api/v1/faqs
func (h *FAQHandler) Create(c *gin.Context) {
	var req faq.UpsertFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "question and answer are required")
		return
	}

	item, err := h.svc.FAQ.CreateFAQ(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, item)
}

// Update 更新FAQ
// PUT /api/v1/faqs/:id
func (h *FAQHandler) Update(c *gin.Context) {
	var req faq.UpsertFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "question and answer are required")
		return
	}

	item, err := h.svc.FAQ.UpdateFAQ(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, item)
}

// Delete 删除FAQ
// DELETE /api/v1/faqs/:id
func (h *FAQHandler) Delete(c *gin.Context) {
	if err := h.svc.FAQ.DeleteFAQ(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}
	NoContent(c)
}
