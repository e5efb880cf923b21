package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/service"
	"github.com/scootsupport/scootsupport/internal/service/auth"
	"github.com/scootsupport/scootsupport/internal/service/otp"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RequestOTP 下发验证码
// POST /api/v1/auth/otp/request
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req otp.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "phone number is required")
		return
	}

	resp, err := h.svc.OTP.RequestCode(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

// VerifyOTP 校验验证码
// POST /api/v1/auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otp.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "phone number and OTP are required")
		return
	}

	resp, err := h.svc.OTP.VerifyCode(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

// Login 邮箱密码登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "email and password are required")
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

// Logout 注销当前令牌
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenValue := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenValue == "" || tokenValue == authHeader {
		Unauthorized(c, "missing authorization header")
		return
	}

	if err := h.svc.Auth.RevokeToken(c.Request.Context(), tokenValue); err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"message": "logged out"})
}
