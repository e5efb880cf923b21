// Package sms 短信发送
package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/scootsupport/scootsupport/internal/config"
)

// Sender 短信发送接口
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// twilioSender 基于 Twilio 的发送实现
type twilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender 创建 Twilio 发送器
func NewTwilioSender(cfg config.SMSConfig) (Sender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio credentials not configured")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &twilioSender{client: client, from: cfg.FromNumber}, nil
}

// Send 发送一条短信
func (s *twilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
