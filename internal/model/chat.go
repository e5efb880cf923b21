package model

import "time"

// 消息发送方
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation 聊天会话
type Conversation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Messages  []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// Message 聊天消息，只追加不修改
type Message struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string    `gorm:"index;size:36;not null" json:"conversation_id"`
	Content        string    `gorm:"type:text" json:"content"`
	Sender         string    `gorm:"size:20;index" json:"sender"` // user, assistant
	FileURL        string    `gorm:"size:500" json:"file_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// ChatAnalytics 对话遥测，只写不读
type ChatAnalytics struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"index;size:36" json:"user_id"`
	ConversationID string    `gorm:"index;size:36" json:"conversation_id"`
	QueryText      string    `gorm:"type:text" json:"query_text"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	FileProcessed  bool      `gorm:"default:false" json:"file_processed"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversations"
}

func (Message) TableName() string {
	return "messages"
}

func (ChatAnalytics) TableName() string {
	return "chat_analytics"
}
