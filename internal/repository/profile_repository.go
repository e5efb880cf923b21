package repository

import (
	"github.com/scootsupport/scootsupport/internal/model"
	"gorm.io/gorm"
)

// profileRepositoryImpl 用户资料数据访问
type profileRepositoryImpl struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户资料仓库
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// Create 创建资料
func (r *profileRepositoryImpl) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

// GetByUserID 按用户 ID 获取资料
func (r *profileRepositoryImpl) GetByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByPhone 按手机号获取资料
func (r *profileRepositoryImpl) GetByPhone(phone string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("phone_number = ?", phone).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update 更新资料
func (r *profileRepositoryImpl) Update(profile *model.Profile) error {
	return r.db.Save(profile).Error
}
