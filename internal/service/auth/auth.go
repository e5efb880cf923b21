// Package auth 登录会话
// OTP 桥把身份落成 email/password，这里负责用它换取可撤销的 Bearer 令牌
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/config"
	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
)

// Service 认证服务
type Service struct {
	repo *repository.Repositories
	cfg  *config.Config
}

// NewService 创建认证服务
func NewService(repo *repository.Repositories, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	User        *model.UserInfo `json:"user"`
}

// Login 邮箱密码登录，签发 Bearer 令牌并落库
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.Auth.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", types.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", types.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", types.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.New().String(),
	}
	tokenValue, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	token := &model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     tokenValue,
		TokenType: "access_token",
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Auth.CreateToken(token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	return &LoginResponse{
		AccessToken: tokenValue,
		ExpiresAt:   expiresAt,
		User:        user.ToUserInfo(),
	}, nil
}

// ValidateToken 验证令牌并返回用户
// 除签名校验外还检查令牌未被撤销
func (s *Service) ValidateToken(ctx context.Context, tokenValue string) (*model.User, error) {
	parsed, err := jwt.ParseWithClaims(tokenValue, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", types.ErrUnauthorized)
	}

	token, err := s.repo.Auth.GetTokenByValue(tokenValue)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", types.ErrUnauthorized)
	}

	user, err := s.repo.Auth.GetUserByID(token.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", types.ErrUnauthorized)
	}
	return user, nil
}

// RevokeToken 撤销令牌，登出用
func (s *Service) RevokeToken(ctx context.Context, tokenValue string) error {
	token, err := s.repo.Auth.GetTokenByValue(tokenValue)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired token", types.ErrUnauthorized)
	}
	if err := s.repo.Auth.RevokeToken(token.ID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsAdmin 服务端角色检查，所有特权操作都依赖它而非前端路由守卫
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, err := s.repo.Profile.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile.IsAdmin(), nil
}
