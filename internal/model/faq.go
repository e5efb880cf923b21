package model

import (
	"time"

	"gorm.io/datatypes"
)

// FAQ 常见问题
type FAQ struct {
	ID           string                        `gorm:"primaryKey;size:36" json:"id"`
	Question     string                        `gorm:"type:text;not null" json:"question"`
	Answer       string                        `gorm:"type:text;not null" json:"answer"`
	Tags         datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"tags"`
	Category     string                        `gorm:"size:100;index" json:"category"`
	IsActive     bool                          `gorm:"index;default:true" json:"is_active"`
	DisplayOrder int                           `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time                     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (FAQ) TableName() string {
	return "faqs"
}
