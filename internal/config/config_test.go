// Package config 配置加载单元测试
package config

import "testing"

// ========== Load 测试 ==========

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("AI.Model = %q, want gpt-4o-mini", cfg.AI.Model)
	}
	if cfg.AI.MaxTokens != 1000 {
		t.Errorf("AI.MaxTokens = %d, want 1000", cfg.AI.MaxTokens)
	}
	if cfg.Auth.SharedPassword != "TempPass123!" {
		t.Errorf("Auth.SharedPassword = %q", cfg.Auth.SharedPassword)
	}
	if cfg.Auth.OTP.TTLSeconds != 300 {
		t.Errorf("Auth.OTP.TTLSeconds = %d, want 300", cfg.Auth.OTP.TTLSeconds)
	}
	if cfg.Auth.OTP.DemoMode {
		t.Error("demo mode should default to off")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() should fail for a missing config file")
	}
}

// ========== 辅助方法测试 ==========

func TestIsProduction(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	if !cfg.IsProduction() {
		t.Error("production environment should be detected")
	}
	cfg.App.Environment = "development"
	if cfg.IsProduction() {
		t.Error("development should not be production")
	}
}

func TestIsAdminPhone(t *testing.T) {
	auth := &AuthConfig{AdminPhones: []string{"+15550000001", "+15550000002"}}

	if !auth.IsAdminPhone("+15550000001") {
		t.Error("allow-listed phone should match")
	}
	if auth.IsAdminPhone("+15559999999") {
		t.Error("unknown phone should not match")
	}
	// 必须精确匹配
	if auth.IsAdminPhone("15550000001") {
		t.Error("matching is exact, no normalization")
	}
}

func TestGetDSN(t *testing.T) {
	db := &DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", DBName: "scootsupport", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=postgres password=secret dbname=scootsupport sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

func TestGetAddr(t *testing.T) {
	srv := &ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got := srv.GetAddr(); got != "0.0.0.0:8080" {
		t.Errorf("GetAddr() = %q", got)
	}
	r := &RedisConfig{Host: "localhost", Port: 6379}
	if got := r.GetAddr(); got != "localhost:6379" {
		t.Errorf("GetAddr() = %q", got)
	}
}
