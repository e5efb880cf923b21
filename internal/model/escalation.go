package model

import "time"

// 升级工单状态
const (
	EscalationStatusPending    = "pending"
	EscalationStatusInProgress = "in_progress"
	EscalationStatusResolved   = "resolved"
)

// EscalatedQuery 用户对 AI 回答不满意时提交的人工复核工单
type EscalatedQuery struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	UserID           string    `gorm:"index;size:36;not null" json:"user_id"`
	ConversationID   string    `gorm:"index;size:36;not null" json:"conversation_id"`
	OriginalQuestion string    `gorm:"type:text;not null" json:"original_question"`
	AIResponse       string    `gorm:"type:text;not null" json:"ai_response"`
	FileURL          string    `gorm:"size:500" json:"file_url,omitempty"`
	UserFeedback     string    `gorm:"type:text" json:"user_feedback,omitempty"`
	EscalationReason string    `gorm:"size:100;default:not_helpful" json:"escalation_reason"`
	Status           string    `gorm:"size:20;index;default:pending" json:"status"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (EscalatedQuery) TableName() string {
	return "escalated_queries"
}

// ValidEscalationStatus 校验工单状态取值
func ValidEscalationStatus(s string) bool {
	switch s {
	case EscalationStatusPending, EscalationStatusInProgress, EscalationStatusResolved:
		return true
	}
	return false
}
