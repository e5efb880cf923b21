package service

import (
	"context"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scootsupport/scootsupport/internal/config"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/auth"
	"github.com/scootsupport/scootsupport/internal/service/chat"
	"github.com/scootsupport/scootsupport/internal/service/escalation"
	"github.com/scootsupport/scootsupport/internal/service/faq"
	"github.com/scootsupport/scootsupport/internal/service/order"
	"github.com/scootsupport/scootsupport/internal/service/otp"
	"github.com/scootsupport/scootsupport/internal/service/sms"
)

// Services 服务集合
type Services struct {
	Auth       *auth.Service
	OTP        *otp.Service
	Chat       *chat.Service
	FAQ        *faq.Service
	Escalation *escalation.Service
	Order      *order.Service

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Warn("failed to create chat model, chat relay disabled")
	}

	sender, err := sms.NewTwilioSender(cfg.SMS)
	if err != nil {
		logrus.WithError(err).Warn("failed to create sms sender, OTP delivery disabled")
	}

	codeStore := otp.NewRedisStore(redisClient)

	return &Services{
		Auth:       auth.NewService(repo, cfg),
		OTP:        otp.NewService(repo, codeStore, sender, cfg),
		Chat:       chat.NewService(repo, chatModel),
		FAQ:        faq.NewService(repo),
		Escalation: escalation.NewService(repo),
		Order:      order.NewService(repo),

		Config: cfg,
	}, nil
}

// newChatModel 创建 ChatModel
func newChatModel(ctx context.Context, cfg *config.Config) (einomodel.BaseChatModel, error) {
	temperature := cfg.AI.Temperature
	maxTokens := cfg.AI.MaxTokens

	mc := &openai.ChatModelConfig{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}
	if cfg.AI.Timeout > 0 {
		mc.Timeout = time.Duration(cfg.AI.Timeout) * time.Second
	}

	return openai.NewChatModel(ctx, mc)
}
