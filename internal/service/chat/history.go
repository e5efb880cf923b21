package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/service/types"
)

// 会话列表默认返回最近 20 条
const conversationListLimit = 20

// DirectSaveRequest 旧版直存请求
// 旧客户端把问答两端一次性提交，不经过模型
type DirectSaveRequest struct {
	UserID   string `json:"userId"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	FileURL  string `json:"fileUrl"`
}

// SaveChatRequest 聊天端点的多路请求体
// 两种形态显式判别，而不是按可选字段有无来猜
type SaveChatRequest struct {
	// 新版中继形态
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	FileContext    string `json:"fileContext"`
	// 旧版直存形态
	UserID   string `json:"userId"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	FileURL  string `json:"fileUrl"`
}

// Legacy 是否旧版直存形态
func (r *SaveChatRequest) Legacy() bool {
	return r.Question != "" && r.Answer != "" && r.UserID != ""
}

// AsSend 转为中继请求
func (r *SaveChatRequest) AsSend() *SendRequest {
	return &SendRequest{
		Message:        r.Message,
		ConversationID: r.ConversationID,
		FileContext:    r.FileContext,
	}
}

// AsDirectSave 转为直存请求
func (r *SaveChatRequest) AsDirectSave() *DirectSaveRequest {
	return &DirectSaveRequest{
		UserID:   r.UserID,
		Question: r.Question,
		Answer:   r.Answer,
		FileURL:  r.FileURL,
	}
}

// DirectSave 直存一组问答，创建新会话但不调用模型
func (s *Service) DirectSave(ctx context.Context, userID string, req *DirectSaveRequest) (*SendResponse, error) {
	if req.Question == "" || req.Answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", types.ErrInvalidInput)
	}

	conv := &model.Conversation{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  DeriveTitle(req.Question),
	}
	if err := s.repo.Chat.CreateConversation(conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	userMsg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        req.Question,
		Sender:         model.SenderUser,
		FileURL:        req.FileURL,
	}
	if err := s.repo.Chat.CreateMessage(userMsg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	assistantMsg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        req.Answer,
		Sender:         model.SenderAssistant,
	}
	if err := s.repo.Chat.CreateMessage(assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	return &SendResponse{Response: req.Answer, ConversationID: conv.ID}, nil
}

// ConversationSummary 会话概要，带最新一条消息预览
type ConversationSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LatestMessage string    `json:"latest_message"`
	MessageCount  int       `json:"message_count"`
}

// ListConversations 列出用户会话，最近更新在前
func (s *Service) ListConversations(ctx context.Context, userID string) ([]*ConversationSummary, error) {
	convs, err := s.repo.Chat.ListConversationsByUser(userID, conversationListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := &ConversationSummary{
			ID:           conv.ID,
			Title:        conv.Title,
			CreatedAt:    conv.CreatedAt,
			UpdatedAt:    conv.UpdatedAt,
			MessageCount: len(conv.Messages),
		}
		if n := len(conv.Messages); n > 0 {
			summary.LatestMessage = conv.Messages[n-1].Content
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetMessages 获取会话消息，时间升序，校验归属
func (s *Service) GetMessages(ctx context.Context, userID, conversationID string) ([]*model.Message, error) {
	conv, err := s.repo.Chat.GetConversationByID(conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: conversation not found or access denied", types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("%w: conversation not found or access denied", types.ErrNotFound)
	}

	return s.repo.Chat.GetMessagesByConversation(conversationID)
}
