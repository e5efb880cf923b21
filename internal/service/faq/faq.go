// Package faq FAQ 内容管理
package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
)

// Service FAQ服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建FAQ服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// UpsertFAQRequest 创建/更新FAQ请求
// 标签是自由文本集合，服务端不约束词表
type UpsertFAQRequest struct {
	Question     string   `json:"question" binding:"required"`
	Answer       string   `json:"answer" binding:"required"`
	Tags         []string `json:"tags"`
	Category     string   `json:"category"`
	IsActive     *bool    `json:"is_active"`
	DisplayOrder int      `json:"display_order"`
}

// CreateFAQ 创建FAQ
func (s *Service) CreateFAQ(ctx context.Context, req *UpsertFAQRequest) (*model.FAQ, error) {
	category := req.Category
	if category == "" {
		category = "general"
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	faq := &model.FAQ{
		ID:           uuid.New().String(),
		Question:     req.Question,
		Answer:       req.Answer,
		Tags:         datatypes.NewJSONSlice(req.Tags),
		Category:     category,
		IsActive:     isActive,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.repo.FAQ.Create(faq); err != nil {
		return nil, fmt.Errorf("failed to create FAQ: %w", err)
	}

	return faq, nil
}

// GetFAQ 获取FAQ
func (s *Service) GetFAQ(ctx context.Context, id string) (*model.FAQ, error) {
	faq, err := s.repo.FAQ.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: FAQ not found", types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load FAQ: %w", err)
	}
	return faq, nil
}

// ListFAQs 列出全部FAQ，后台用
func (s *Service) ListFAQs(ctx context.Context) ([]*model.FAQ, error) {
	return s.repo.FAQ.List()
}

// ListActiveFAQs 列出启用的FAQ，前台挂件按 display_order 展示
func (s *Service) ListActiveFAQs(ctx context.Context) ([]*model.FAQ, error) {
	return s.repo.FAQ.ListActive()
}

// UpdateFAQ 更新FAQ
func (s *Service) UpdateFAQ(ctx context.Context, id string, req *UpsertFAQRequest) (*model.FAQ, error) {
	faq, err := s.GetFAQ(ctx, id)
	if err != nil {
		return nil, err
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Tags = datatypes.NewJSONSlice(req.Tags)
	faq.DisplayOrder = req.DisplayOrder
	if req.Category != "" {
		faq.Category = req.Category
	}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}

	if err := s.repo.FAQ.Update(faq); err != nil {
		return nil, fmt.Errorf("failed to update FAQ: %w", err)
	}

	return faq, nil
}

// DeleteFAQ 删除FAQ
func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	if _, err := s.GetFAQ(ctx, id); err != nil {
		return err
	}
	if err := s.repo.FAQ.Delete(id); err != nil {
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}
	return nil
}
