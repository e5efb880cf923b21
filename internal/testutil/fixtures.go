// Package testutil 提供测试辅助工具
package testutil

import (
	"strings"
	"testing"

	"github.com/scootsupport/scootsupport/internal/config"
)

// TestConfig 返回单元测试用的配置
// 验证码走真实比对，限流阈值放宽避免干扰无关用例
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "scootsupport",
			Environment: "test",
			Debug:       false,
		},
		AI: config.AIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			TokenTTLHours:  1,
			SharedPassword: "TempPass123!",
			AdminPhones:    []string{"+15550000001"},
			OTP: config.OTPConfig{
				TTLSeconds:      300,
				DemoMode:        false,
				RateLimitWindow: 60,
				RateLimitBurst:  100,
			},
		},
	}
}

// AssertHelper 提供断言相关的测试辅助
type AssertHelper struct {
	t *testing.T
}

// NewAssertHelper 创建断言辅助器
func NewAssertHelper(t *testing.T) *AssertHelper {
	return &AssertHelper{t: t}
}

// NoError 断言没有错误
func (h *AssertHelper) NoError(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("Unexpected error: %v %v", err, msgAndArgs)
	}
}

// Error 断言有错误
func (h *AssertHelper) Error(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
}

// ErrorContains 断言错误包含指定字符串
func (h *AssertHelper) ErrorContains(err error, substr string, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), substr) {
		h.t.Fatalf("Error %q does not contain %q %v", err.Error(), substr, msgAndArgs)
	}
}

// Equal 断言相等
func (h *AssertHelper) Equal(expected, actual interface{}, msgAndArgs ...interface{}) {
	h.t.Helper()
	if expected != actual {
		h.t.Fatalf("Expected %v, got %v %v", expected, actual, msgAndArgs)
	}
}

// NotEmpty 断言字符串非空
func (h *AssertHelper) NotEmpty(s string, msgAndArgs ...interface{}) {
	h.t.Helper()
	if s == "" {
		h.t.Fatalf("Expected non-empty string %v", msgAndArgs)
	}
}

// NotNil 断言非 nil
func (h *AssertHelper) NotNil(v interface{}, msgAndArgs ...interface{}) {
	h.t.Helper()
	if v == nil {
		h.t.Fatal("Expected non-nil, got nil")
	}
}

// True 断言为真
func (h *AssertHelper) True(condition bool, msgAndArgs ...interface{}) {
	h.t.Helper()
	if !condition {
		h.t.Fatalf("Expected true, got false %v", msgAndArgs)
	}
}

// False 断言为假
func (h *AssertHelper) False(condition bool, msgAndArgs ...interface{}) {
	h.t.Helper()
	if condition {
		h.t.Fatalf("Expected false, got true %v", msgAndArgs)
	}
}

// Len 断言切片长度
func (h *AssertHelper) Len(length, expected int, msgAndArgs ...interface{}) {
	h.t.Helper()
	if length != expected {
		h.t.Fatalf("Expected length %d, got %d %v", expected, length, msgAndArgs)
	}
}
