package repository

import (
	"time"

	"github.com/scootsupport/scootsupport/internal/model"
	"gorm.io/gorm"
)

// chatRepositoryImpl 会话/消息数据访问
type chatRepositoryImpl struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepositoryImpl{db: db}
}

// CreateConversation 创建会话
func (r *chatRepositoryImpl) CreateConversation(conv *model.Conversation) error {
	return r.db.Create(conv).Error
}

// GetConversationByID 获取会话
func (r *chatRepositoryImpl) GetConversationByID(id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversationsByUser 列出用户会话，按最近更新排序，含消息
func (r *chatRepositoryImpl) ListConversationsByUser(userID string, limit int) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	err := r.db.Where("user_id = ?", userID).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

// TouchConversation 刷新会话更新时间
func (r *chatRepositoryImpl) TouchConversation(id string) error {
	return r.db.Model(&model.Conversation{}).Where("id = ?", id).
		UpdateColumn("updated_at", time.Now()).Error
}

// CreateMessage 创建消息
func (r *chatRepositoryImpl) CreateMessage(msg *model.Message) error {
	return r.db.Create(msg).Error
}

// GetMessagesByConversation 获取会话全部消息，时间升序
func (r *chatRepositoryImpl) GetMessagesByConversation(conversationID string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetRecentMessages 获取会话最近的 N 条消息，时间降序
func (r *chatRepositoryImpl) GetRecentMessages(conversationID string, limit int) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// CreateAnalytics 写入遥测
func (r *chatRepositoryImpl) CreateAnalytics(entry *model.ChatAnalytics) error {
	return r.db.Create(entry).Error
}
