package repository

import (
	"github.com/scootsupport/scootsupport/internal/model"
	"gorm.io/gorm"
)

// faqRepositoryImpl FAQ数据访问
type faqRepositoryImpl struct {
	db *gorm.DB
}

// NewFAQRepository 创建FAQ仓库
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepositoryImpl{db: db}
}

// Create 创建FAQ
func (r *faqRepositoryImpl) Create(faq *model.FAQ) error {
	return r.db.Create(faq).Error
}

// GetByID 获取FAQ
func (r *faqRepositoryImpl) GetByID(id string) (*model.FAQ, error) {
	var faq model.FAQ
	err := r.db.Where("id = ?", id).First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// List 列出全部FAQ，后台用
func (r *faqRepositoryImpl) List() ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.Order("display_order ASC, created_at ASC").Find(&faqs).Error
	return faqs, err
}

// ListActive 列出启用的FAQ，前台挂件用
func (r *faqRepositoryImpl) ListActive() ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.Where("is_active = ?", true).
		Order("display_order ASC, created_at ASC").
		Find(&faqs).Error
	return faqs, err
}

// Update 更新FAQ
func (r *faqRepositoryImpl) Update(faq *model.FAQ) error {
	return r.db.Save(faq).Error
}

// Delete 删除FAQ
func (r *faqRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&model.FAQ{}, "id = ?", id).Error
}
