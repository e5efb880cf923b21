// Package otp 手机验证码认证桥
// 后端没有原生手机号身份，验证通过后为手机号合成一个 email/password 身份，
// 客户端再用返回的邮箱和共享密码完成登录
package otp

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/config"
	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/auth"
	"github.com/scootsupport/scootsupport/internal/service/sms"
	"github.com/scootsupport/scootsupport/internal/service/types"
	"github.com/google/uuid"
)

var (
	codePattern     = regexp.MustCompile(`^\d{6}$`)
	nonDigitPattern = regexp.MustCompile(`[^0-9]`)
)

// Service 验证码服务
type Service struct {
	repo    *repository.Repositories
	store   CodeStore
	sender  sms.Sender
	cfg     *config.Config
	limiter *limiter
}

// NewService 创建验证码服务
func NewService(repo *repository.Repositories, store CodeStore, sender sms.Sender, cfg *config.Config) *Service {
	return &Service{
		repo:    repo,
		store:   store,
		sender:  sender,
		cfg:     cfg,
		limiter: newLimiter(time.Duration(cfg.Auth.OTP.RateLimitWindow)*time.Second, cfg.Auth.OTP.RateLimitBurst),
	}
}

// RequestCodeRequest 下发验证码请求
type RequestCodeRequest struct {
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	IsAdminRequest bool   `json:"isAdminRequest"`
}

// RequestCodeResponse 下发验证码响应
type RequestCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"otp,omitempty"` // 仅非生产环境回传，便于联调
}

// RequestCode 生成 6 位验证码并短信下发
// 管理员请求在发送任何短信之前先校验白名单
func (s *Service) RequestCode(ctx context.Context, req *RequestCodeRequest) (*RequestCodeResponse, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", types.ErrInvalidInput)
	}

	if req.IsAdminRequest && !s.cfg.Auth.IsAdminPhone(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: admin access denied for this phone number", types.ErrForbidden)
	}

	if !s.limiter.allow(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: too many OTP requests for this phone number", types.ErrRateLimited)
	}

	code := generateCode()
	ttl := time.Duration(s.cfg.Auth.OTP.TTLSeconds) * time.Second

	if err := s.store.Set(ctx, req.PhoneNumber, code, ttl); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if s.sender == nil {
		return nil, fmt.Errorf("%w: sms sender not configured", types.ErrUpstream)
	}

	body := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, s.cfg.Auth.OTP.TTLSeconds/60)
	if err := s.sender.Send(ctx, req.PhoneNumber, body); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}

	resp := &RequestCodeResponse{Success: true, Message: "OTP sent successfully"}
	if !s.cfg.IsProduction() {
		resp.Code = code
	}
	return resp, nil
}

// VerifiedUser 验证通过后返回的身份
type VerifiedUser struct {
	ID      string `json:"id"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// VerifyCodeRequest 校验验证码请求
type VerifyCodeRequest struct {
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	Code           string `json:"otp" binding:"required"`
	IsAdminRequest bool   `json:"isAdminRequest"`
}

// VerifyCodeResponse 校验验证码响应
// ShouldSignIn 提示客户端用返回邮箱和共享密码登录
type VerifyCodeResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	User         *VerifiedUser `json:"user"`
	ShouldSignIn bool          `json:"shouldSignIn"`
}

// VerifyCode 校验验证码并解析/创建后端身份
// 同一手机号重复验证是幂等的，总是复用首次创建的身份
func (s *Service) VerifyCode(ctx context.Context, req *VerifyCodeRequest) (*VerifyCodeResponse, error) {
	if req.PhoneNumber == "" || req.Code == "" {
		return nil, fmt.Errorf("%w: phone number and OTP are required", types.ErrInvalidInput)
	}

	if req.IsAdminRequest && !s.cfg.Auth.IsAdminPhone(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: admin access denied for this phone number", types.ErrForbidden)
	}

	// 校验尝试与下发共用一个桶，验证码在 TTL 内不可穷举
	if !s.limiter.allow(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: too many OTP attempts for this phone number", types.ErrRateLimited)
	}

	// 格式不合法的验证码在任何身份查询之前拒绝
	if !codePattern.MatchString(req.Code) {
		return nil, fmt.Errorf("%w: invalid or expired OTP", types.ErrInvalidInput)
	}

	// demoMode 下保留只验格式的演示行为
	if !s.cfg.Auth.OTP.DemoMode {
		stored, err := s.store.Get(ctx, req.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to load OTP: %w", err)
		}
		if stored == "" || stored != req.Code {
			return nil, fmt.Errorf("%w: invalid or expired OTP", types.ErrInvalidInput)
		}
	}
	// 验证码一次性消费，删除失败只记日志
	if err := s.store.Delete(ctx, req.PhoneNumber); err != nil {
		logrus.WithError(err).WithField("phone", req.PhoneNumber).
			Warn("failed to consume OTP")
	}

	user, profile, err := s.resolveIdentity(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	// 管理员请求对解析出的身份再做一次校验
	if req.IsAdminRequest && !s.cfg.Auth.IsAdminPhone(profile.PhoneNumber) {
		return nil, fmt.Errorf("%w: admin access denied", types.ErrForbidden)
	}

	return &VerifyCodeResponse{
		Success: true,
		Message: "OTP verified successfully",
		User: &VerifiedUser{
			ID:      user.ID,
			Phone:   profile.PhoneNumber,
			Email:   user.Email,
			IsAdmin: profile.IsAdmin(),
		},
		ShouldSignIn: true,
	}, nil
}

// resolveIdentity 按手机号复用或创建后端身份
// 已有身份重置为共享密码，新身份用手机号派生的合成邮箱创建
func (s *Service) resolveIdentity(phone string) (*model.User, *model.Profile, error) {
	profile, err := s.repo.Profile.GetByPhone(phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	hash, err := auth.HashPassword(s.cfg.Auth.SharedPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if profile != nil {
		user, err := s.repo.Auth.GetUserByID(profile.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load user: %w", err)
		}

		user.PasswordHash = hash
		if err := s.repo.Auth.UpdateUser(user); err != nil {
			return nil, nil, fmt.Errorf("failed to reset password: %w", err)
		}

		// 白名单变更后在下一次验证时提升角色
		if s.cfg.Auth.IsAdminPhone(phone) && !profile.IsAdmin() {
			profile.Role = model.RoleAdmin
			if err := s.repo.Profile.Update(profile); err != nil {
				return nil, nil, fmt.Errorf("failed to update profile: %w", err)
			}
		}
		return user, profile, nil
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        SyntheticEmail(phone),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.repo.Auth.CreateUser(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user account: %w", err)
	}

	role := model.RoleUser
	if s.cfg.Auth.IsAdminPhone(phone) {
		role = model.RoleAdmin
	}
	profile = &model.Profile{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		PhoneNumber: phone,
		DisplayName: phone,
		Role:        role,
	}
	if err := s.repo.Profile.Create(profile); err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return user, profile, nil
}

// SyntheticEmail 从手机号的数字派生合成邮箱
func SyntheticEmail(phone string) string {
	return nonDigitPattern.ReplaceAllString(phone, "") + "@phone.temp"
}

func generateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}
