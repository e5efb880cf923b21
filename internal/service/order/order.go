// Package order 订单
package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
)

// 默认发货周期
const defaultDeliveryDays = 7

// Service 订单服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建订单服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateRequest 下单请求
type CreateRequest struct {
	Model string `json:"model" binding:"required"`
}

// Create 结账时创建订单
func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*model.Order, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("%w: model is required", types.ErrInvalidInput)
	}

	now := time.Now()
	eta := now.AddDate(0, 0, defaultDeliveryDays)
	order := &model.Order{
		ID:          uuid.New().String(),
		OrderID:     NewOrderID(),
		Model:       req.Model,
		Status:      model.OrderStatusProcessing,
		UserID:      userID,
		OrderDate:   now,
		DeliveryETA: &eta,
	}
	if err := s.repo.Order.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// ListForUser 列出用户自己的订单
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.repo.Order.ListByUser(userID)
}

// List 列出全部订单，后台用
func (s *Service) List(ctx context.Context) ([]*model.Order, error) {
	return s.repo.Order.List()
}

// UpdateStatus 后台修改订单状态，不做状态机约束
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", types.ErrInvalidInput)
	}

	order, err := s.repo.Order.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order not found", types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	order.Status = status
	if err := s.repo.Order.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// NewOrderID 生成对外展示的订单号
func NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
