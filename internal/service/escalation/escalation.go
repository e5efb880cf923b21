// Package escalation 人工升级工单
// 用户对 AI 回答不满意时提交工单，后台人工分流处理
package escalation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
)

// Service 升级工单服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建升级工单服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// SubmitRequest 提交工单请求
type SubmitRequest struct {
	ConversationID   string `json:"conversationId" binding:"required"`
	OriginalQuestion string `json:"originalQuestion" binding:"required"`
	AIResponse       string `json:"aiResponse" binding:"required"`
	FileURL          string `json:"fileUrl"`
	UserFeedback     string `json:"userFeedback"`
	EscalationReason string `json:"escalationReason"`
}

// SubmitResponse 提交工单响应
type SubmitResponse struct {
	Success   bool      `json:"success"`
	QueryID   string    `json:"queryId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Submit 提交工单
// 插入前校验会话归属，防止替别人的会话提工单
func (s *Service) Submit(ctx context.Context, userID string, req *SubmitRequest) (*SubmitResponse, error) {
	if req.ConversationID == "" || req.OriginalQuestion == "" || req.AIResponse == "" {
		return nil, fmt.Errorf("%w: conversationId, originalQuestion and aiResponse are required", types.ErrInvalidInput)
	}

	conv, err := s.repo.Chat.GetConversationByID(req.ConversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: conversation not found or access denied", types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("%w: conversation not found or access denied", types.ErrNotFound)
	}

	reason := req.EscalationReason
	if reason == "" {
		reason = "not_helpful"
	}

	query := &model.EscalatedQuery{
		ID:               uuid.New().String(),
		UserID:           userID,
		ConversationID:   req.ConversationID,
		OriginalQuestion: req.OriginalQuestion,
		AIResponse:       req.AIResponse,
		FileURL:          req.FileURL,
		UserFeedback:     req.UserFeedback,
		EscalationReason: reason,
		Status:           model.EscalationStatusPending,
	}
	if err := s.repo.Escalation.Create(query); err != nil {
		return nil, fmt.Errorf("failed to submit query: %w", err)
	}

	return &SubmitResponse{
		Success:   true,
		QueryID:   query.ID,
		Message:   "Your query has been submitted for review. Our team will get back to you soon.",
		Timestamp: query.CreatedAt,
	}, nil
}

// List 列出工单，最新在前，可按状态过滤
func (s *Service) List(ctx context.Context, status string) ([]*model.EscalatedQuery, error) {
	if status != "" && !model.ValidEscalationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", types.ErrInvalidInput, status)
	}
	return s.repo.Escalation.List(status)
}

// UpdateStatus 更新工单状态
// 状态间可任意流转，pending/in_progress/resolved 之外的值拒绝
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*model.EscalatedQuery, error) {
	if !model.ValidEscalationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", types.ErrInvalidInput, status)
	}

	query, err := s.repo.Escalation.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: escalated query not found", types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load escalated query: %w", err)
	}

	query.Status = status
	if err := s.repo.Escalation.Update(query); err != nil {
		return nil, fmt.Errorf("failed to update escalated query: %w", err)
	}

	return query, nil
}
