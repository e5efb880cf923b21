// Package chat 聊天中继
// 用户消息入库、拼上下文调用 LLM、回复入库并记一条遥测
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
)

const (
	// 会话标题取首条消息前 50 个字符
	titleLimit = 50
	// 取最近 10 条消息做候选上下文
	historyWindow = 10
	// 实际发给模型的上下文条数
	modelWindow = 6

	systemPrompt = `You are a helpful customer support assistant for ScootSupport, a scooter support service.
    Be friendly, concise, and helpful. Focus on scooter-related issues, maintenance, troubleshooting, and customer service.`
)

// Service 聊天服务
type Service struct {
	repo      *repository.Repositories
	chatModel einomodel.BaseChatModel
}

// NewService 创建聊天服务
func NewService(repo *repository.Repositories, chatModel einomodel.BaseChatModel) *Service {
	return &Service{repo: repo, chatModel: chatModel}
}

// SendRequest 聊天请求
type SendRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	FileContext    string `json:"fileContext"`
}

// SendResponse 聊天响应
type SendResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
}

// Send 处理一轮对话
// 用户消息先于模型调用落库：模型失败时用户消息仍然保留
func (s *Service) Send(ctx context.Context, userID string, req *SendRequest) (*SendResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", types.ErrInvalidInput)
	}
	if s.chatModel == nil {
		return nil, fmt.Errorf("%w: chat model not configured", types.ErrUpstream)
	}

	start := time.Now()

	conv, err := s.resolveConversation(userID, req)
	if err != nil {
		return nil, err
	}

	userMsg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        req.Message,
		Sender:         model.SenderUser,
	}
	if err := s.repo.Chat.CreateMessage(userMsg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	history, err := s.repo.Chat.GetRecentMessages(conv.ID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	reply, err := s.chatModel.Generate(ctx, buildPrompt(history, req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}

	assistantMsg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        reply.Content,
		Sender:         model.SenderAssistant,
	}
	if err := s.repo.Chat.CreateMessage(assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	if err := s.repo.Chat.TouchConversation(conv.ID); err != nil {
		logrus.WithError(err).WithField("conversation_id", conv.ID).
			Warn("failed to touch conversation")
	}

	// 遥测是尽力而为的，失败只记日志
	entry := &model.ChatAnalytics{
		ID:             uuid.New().String(),
		UserID:         userID,
		ConversationID: conv.ID,
		QueryText:      req.Message,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		FileProcessed:  req.FileContext != "",
	}
	if err := s.repo.Chat.CreateAnalytics(entry); err != nil {
		logrus.WithError(err).WithField("conversation_id", conv.ID).
			Warn("failed to record chat analytics")
	}

	return &SendResponse{Response: reply.Content, ConversationID: conv.ID}, nil
}

// resolveConversation 复用请求给定的会话，没有则新建
func (s *Service) resolveConversation(userID string, req *SendRequest) (*model.Conversation, error) {
	if req.ConversationID != "" {
		conv, err := s.repo.Chat.GetConversationByID(req.ConversationID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation not found or access denied", types.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
		if conv.UserID != userID {
			return nil, fmt.Errorf("%w: conversation not found or access denied", types.ErrNotFound)
		}
		return conv, nil
	}

	conv := &model.Conversation{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  DeriveTitle(req.Message),
	}
	if err := s.repo.Chat.CreateConversation(conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// buildPrompt 组装模型输入：system + 最近 modelWindow 条上下文 + 本轮消息
// history 为时间降序，含刚保存的用户消息
func buildPrompt(history []*model.Message, req *SendRequest) []*schema.Message {
	prompt := systemPrompt
	if req.FileContext != "" {
		prompt += "\n\nThe user has uploaded a file with the following content/context: " + req.FileContext
	}

	msgs := []*schema.Message{schema.SystemMessage(prompt)}

	// 还原为时间升序
	asc := make([]*model.Message, len(history))
	for i, m := range history {
		asc[len(history)-1-i] = m
	}
	if len(asc) > modelWindow {
		asc = asc[len(asc)-modelWindow:]
	}
	for _, m := range asc {
		if m.Sender == model.SenderUser {
			msgs = append(msgs, schema.UserMessage(m.Content))
		} else {
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		}
	}

	return append(msgs, schema.UserMessage(req.Message))
}

// DeriveTitle 从首条消息派生会话标题，超长截断
func DeriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleLimit {
		return message
	}
	return string(runes[:titleLimit]) + "..."
}
