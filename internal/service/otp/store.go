package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "otp:"

// CodeStore 验证码存储
// 实现需保证验证码在 TTL 到期后自动失效
type CodeStore interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error) // 不存在时返回空串
	Delete(ctx context.Context, phone string) error
}

// redisStore 基于 Redis 的验证码存储
type redisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 验证码存储
func NewRedisStore(client *redis.Client) CodeStore {
	return &redisStore{client: client}
}

// Set 写入验证码
func (s *redisStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, codeKeyPrefix+phone, code, ttl).Err()
}

// Get 读取验证码
func (s *redisStore) Get(ctx context.Context, phone string) (string, error) {
	val, err := s.client.Get(ctx, codeKeyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Delete 删除验证码，验证通过后一次性消费
func (s *redisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKeyPrefix+phone).Err()
}
