// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import "github.com/scootsupport/scootsupport/internal/model"

// AuthRepository 认证数据访问接口
type AuthRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	UpdateUser(user *model.User) error

	CreateToken(token *model.AuthToken) error
	GetTokenByValue(tokenValue string) (*model.AuthToken, error)
	RevokeToken(tokenID string) error
	RevokeTokensByUserID(userID string) error
}

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	Create(profile *model.Profile) error
	GetByUserID(userID string) (*model.Profile, error)
	GetByPhone(phone string) (*model.Profile, error)
	Update(profile *model.Profile) error
}

// ChatRepository 会话/消息数据访问接口
type ChatRepository interface {
	CreateConversation(conv *model.Conversation) error
	GetConversationByID(id string) (*model.Conversation, error)
	ListConversationsByUser(userID string, limit int) ([]*model.Conversation, error)
	TouchConversation(id string) error

	CreateMessage(msg *model.Message) error
	GetMessagesByConversation(conversationID string) ([]*model.Message, error)
	GetRecentMessages(conversationID string, limit int) ([]*model.Message, error)

	CreateAnalytics(entry *model.ChatAnalytics) error
}

// FAQRepository FAQ数据访问接口
type FAQRepository interface {
	Create(faq *model.FAQ) error
	GetByID(id string) (*model.FAQ, error)
	List() ([]*model.FAQ, error)
	ListActive() ([]*model.FAQ, error)
	Update(faq *model.FAQ) error
	Delete(id string) error
}

// EscalationRepository 升级工单数据访问接口
type EscalationRepository interface {
	Create(q *model.EscalatedQuery) error
	GetByID(id string) (*model.EscalatedQuery, error)
	List(status string) ([]*model.EscalatedQuery, error)
	Update(q *model.EscalatedQuery) error
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *model.Order) error
	GetByID(id string) (*model.Order, error)
	ListByUser(userID string) ([]*model.Order, error)
	List() ([]*model.Order, error)
	Update(order *model.Order) error
}

// 确保实现满足接口
var (
	_ AuthRepository       = (*authRepositoryImpl)(nil)
	_ ProfileRepository    = (*profileRepositoryImpl)(nil)
	_ ChatRepository       = (*chatRepositoryImpl)(nil)
	_ FAQRepository        = (*faqRepositoryImpl)(nil)
	_ EscalationRepository = (*escalationRepositoryImpl)(nil)
	_ OrderRepository      = (*orderRepositoryImpl)(nil)
)
