package repository

import (
	"github.com/scootsupport/scootsupport/internal/model"
	"gorm.io/gorm"
)

// orderRepositoryImpl 订单数据访问
type orderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepositoryImpl{db: db}
}

// Create 创建订单
func (r *orderRepositoryImpl) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

// GetByID 获取订单
func (r *orderRepositoryImpl) GetByID(id string) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser 列出用户订单，下单时间降序
func (r *orderRepositoryImpl) ListByUser(userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// List 列出全部订单，后台用
func (r *orderRepositoryImpl) List() ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.Order("order_date DESC").Find(&orders).Error
	return orders, err
}

// Update 更新订单
func (r *orderRepositoryImpl) Update(order *model.Order) error {
	return r.db.Save(order).Error
}
