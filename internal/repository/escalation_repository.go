package repository

import (
	"github.com/scootsupport/scootsupport/internal/model"
	"gorm.io/gorm"
)

// escalationRepositoryImpl 升级工单数据访问
type escalationRepositoryImpl struct {
	db *gorm.DB
}

// NewEscalationRepository 创建升级工单仓库
func NewEscalationRepository(db *gorm.DB) EscalationRepository {
	return &escalationRepositoryImpl{db: db}
}

// Create 创建工单
func (r *escalationRepositoryImpl) Create(q *model.EscalatedQuery) error {
	return r.db.Create(q).Error
}

// GetByID 获取工单
func (r *escalationRepositoryImpl) GetByID(id string) (*model.EscalatedQuery, error) {
	var q model.EscalatedQuery
	err := r.db.Where("id = ?", id).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List 列出工单，最新在前，可按状态过滤
func (r *escalationRepositoryImpl) List(status string) ([]*model.EscalatedQuery, error) {
	var queries []*model.EscalatedQuery
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&queries).Error
	return queries, err
}

// Update 更新工单
func (r *escalationRepositoryImpl) Update(q *model.EscalatedQuery) error {
	return r.db.Save(q).Error
}
