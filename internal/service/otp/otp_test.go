// Package otp 验证码桥单元测试
package otp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
	"github.com/scootsupport/scootsupport/internal/testutil"
)

// memStore 内存验证码存储
type memStore struct {
	codes     map[string]string
	delFailed bool // Delete 返回错误
}

func newMemStore() *memStore {
	return &memStore{codes: map[string]string{}}
}

func (s *memStore) Set(_ context.Context, phone, code string, _ time.Duration) error {
	s.codes[phone] = code
	return nil
}

func (s *memStore) Get(_ context.Context, phone string) (string, error) {
	return s.codes[phone], nil
}

func (s *memStore) Delete(_ context.Context, phone string) error {
	if s.delFailed {
		return errors.New("redis down")
	}
	delete(s.codes, phone)
	return nil
}

// fakeSender 记录发送的短信
type fakeSender struct {
	sent []string // 收件号码
	body string   // 最后一条内容
	fail bool
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.fail {
		return errors.New("twilio down")
	}
	f.sent = append(f.sent, to)
	f.body = body
	return nil
}

// mockAuthRepo 内存用户存储
type mockAuthRepo struct {
	users map[string]*model.User // id -> user
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]*model.User{}}
}

func (m *mockAuthRepo) CreateUser(user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockAuthRepo) GetUserByID(id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthRepo) UpdateUser(user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockAuthRepo) CreateToken(*model.AuthToken) error               { return nil }
func (m *mockAuthRepo) GetTokenByValue(string) (*model.AuthToken, error) { return nil, gorm.ErrRecordNotFound }
func (m *mockAuthRepo) RevokeToken(string) error                         { return nil }
func (m *mockAuthRepo) RevokeTokensByUserID(string) error                { return nil }

// mockProfileRepo 内存资料存储
type mockProfileRepo struct {
	profiles map[string]*model.Profile // phone -> profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: map[string]*model.Profile{}}
}

func (m *mockProfileRepo) Create(p *model.Profile) error {
	m.profiles[p.PhoneNumber] = p
	return nil
}

func (m *mockProfileRepo) GetByUserID(userID string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByPhone(phone string) (*model.Profile, error) {
	if p, ok := m.profiles[phone]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(p *model.Profile) error {
	m.profiles[p.PhoneNumber] = p
	return nil
}

type fixture struct {
	svc     *Service
	store   *memStore
	sender  *fakeSender
	auth    *mockAuthRepo
	profile *mockProfileRepo
}

func newFixture() *fixture {
	store := newMemStore()
	sender := &fakeSender{}
	auth := newMockAuthRepo()
	profile := newMockProfileRepo()
	repo := &repository.Repositories{Auth: auth, Profile: profile}
	svc := NewService(repo, store, sender, testutil.TestConfig())
	return &fixture{svc: svc, store: store, sender: sender, auth: auth, profile: profile}
}

// requestAndVerify 走完整的下发加校验流程
func (f *fixture) requestAndVerify(t *testing.T, phone string) *VerifyCodeResponse {
	t.Helper()
	ctx := context.Background()

	reqResp, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: phone})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	resp, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: phone, Code: reqResp.Code})
	if err != nil {
		t.Fatalf("VerifyCode() unexpected error: %v", err)
	}
	return resp
}

// ========== RequestCode 测试 ==========

func TestRequestCode(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.RequestCode(context.Background(), &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("Success should be true")
	}
	if resp.Message != "OTP sent successfully" {
		t.Errorf("Message = %q", resp.Message)
	}
	// 非生产环境回传验证码，且与存储和短信内容一致
	if len(resp.Code) != 6 {
		t.Fatalf("Code = %q, want 6 digits", resp.Code)
	}
	if f.store.codes["+15551234567"] != resp.Code {
		t.Errorf("stored code = %q, want %q", f.store.codes["+15551234567"], resp.Code)
	}
	if len(f.sender.sent) != 1 || f.sender.sent[0] != "+15551234567" {
		t.Errorf("sent = %v, want one SMS to the requested phone", f.sender.sent)
	}
	if !strings.Contains(f.sender.body, resp.Code) {
		t.Errorf("SMS body %q does not contain the code", f.sender.body)
	}
	if !strings.Contains(f.sender.body, "5 minutes") {
		t.Errorf("SMS body %q should mention validity window", f.sender.body)
	}
}

func TestRequestCode_EmptyPhone(t *testing.T) {
	f := newFixture()

	_, err := f.svc.RequestCode(context.Background(), &RequestCodeRequest{})
	if !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestRequestCode_AdminDeniedBeforeSMS(t *testing.T) {
	f := newFixture()

	// 白名单外的号码请求管理员验证码：拒绝且不发短信、不写存储
	_, err := f.svc.RequestCode(context.Background(), &RequestCodeRequest{
		PhoneNumber:    "+15559999999",
		IsAdminRequest: true,
	})
	if !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
	if len(f.sender.sent) != 0 {
		t.Error("no SMS should be sent for a denied admin request")
	}
	if len(f.store.codes) != 0 {
		t.Error("no code should be stored for a denied admin request")
	}
}

func TestRequestCode_AdminAllowed(t *testing.T) {
	f := newFixture()

	// +15550000001 在测试配置的白名单里
	resp, err := f.svc.RequestCode(context.Background(), &RequestCodeRequest{
		PhoneNumber:    "+15550000001",
		IsAdminRequest: true,
	})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("Success should be true")
	}
}

func TestRequestCode_RateLimited(t *testing.T) {
	f := newFixture()
	f.svc.limiter = newLimiter(time.Minute, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15551234567"}); err != nil {
			t.Fatalf("request %d unexpected error: %v", i, err)
		}
	}

	_, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if !errors.Is(err, types.ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}

	// 其他号码不受影响
	if _, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15557654321"}); err != nil {
		t.Errorf("other phone unexpected error: %v", err)
	}
}

func TestRequestCode_SenderFailure(t *testing.T) {
	f := newFixture()
	f.sender.fail = true

	_, err := f.svc.RequestCode(context.Background(), &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if !errors.Is(err, types.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestRequestCode_NoSender(t *testing.T) {
	f := newFixture()
	f.svc.sender = nil

	_, err := f.svc.RequestCode(context.Background(), &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if !errors.Is(err, types.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

// ========== VerifyCode 测试 ==========

func TestVerifyCode_NewPhoneCreatesIdentity(t *testing.T) {
	f := newFixture()

	resp := f.requestAndVerify(t, "+1 (555) 123-4567")

	if !resp.Success || !resp.ShouldSignIn {
		t.Error("Success and ShouldSignIn should be true")
	}
	if resp.User == nil {
		t.Fatal("User should not be nil")
	}
	// 合成邮箱只保留数字
	if resp.User.Email != "15551234567@phone.temp" {
		t.Errorf("Email = %q, want 15551234567@phone.temp", resp.User.Email)
	}
	if resp.User.IsAdmin {
		t.Error("a fresh non-allow-listed phone should not be admin")
	}
	if len(f.auth.users) != 1 {
		t.Errorf("users = %d, want 1", len(f.auth.users))
	}
	if len(f.profile.profiles) != 1 {
		t.Errorf("profiles = %d, want 1", len(f.profile.profiles))
	}
}

func TestVerifyCode_Idempotent(t *testing.T) {
	f := newFixture()

	first := f.requestAndVerify(t, "+15551234567")
	second := f.requestAndVerify(t, "+15551234567")

	// 重复验证复用首次创建的身份
	if first.User.ID != second.User.ID {
		t.Errorf("user IDs differ: %q vs %q", first.User.ID, second.User.ID)
	}
	if len(f.auth.users) != 1 {
		t.Errorf("users = %d, want exactly 1 after re-verification", len(f.auth.users))
	}
	if len(f.profile.profiles) != 1 {
		t.Errorf("profiles = %d, want exactly 1 after re-verification", len(f.profile.profiles))
	}
}

func TestVerifyCode_WrongCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reqResp, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	wrong := "000000"
	if wrong == reqResp.Code {
		wrong = "000001"
	}
	_, err = f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: wrong})
	if !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	// 验证失败不产生身份
	if len(f.auth.users) != 0 {
		t.Error("no user should be created on failed verification")
	}
}

func TestVerifyCode_MalformedCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, code := range []string{"12345", "1234567", "abcdef", "12 456", ""} {
		_, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: code})
		if !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("code %q: error = %v, want ErrInvalidInput", code, err)
		}
	}
}

func TestVerifyCode_SingleUse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reqResp, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	req := &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: reqResp.Code}
	if _, err := f.svc.VerifyCode(ctx, req); err != nil {
		t.Fatalf("first VerifyCode() unexpected error: %v", err)
	}

	// 同一验证码第二次使用被拒绝
	if _, err := f.svc.VerifyCode(ctx, req); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput on reuse", err)
	}
}

func TestVerifyCode_AdminDenied(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reqResp, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15559999999"})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	_, err = f.svc.VerifyCode(ctx, &VerifyCodeRequest{
		PhoneNumber:    "+15559999999",
		Code:           reqResp.Code,
		IsAdminRequest: true,
	})
	if !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
	// 管理员校验发生在身份创建之前
	if len(f.auth.users) != 0 {
		t.Error("no user should be created for a denied admin verification")
	}
}

func TestVerifyCode_AdminAllowListed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reqResp, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15550000001", IsAdminRequest: true})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	resp, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{
		PhoneNumber:    "+15550000001",
		Code:           reqResp.Code,
		IsAdminRequest: true,
	})
	if err != nil {
		t.Fatalf("VerifyCode() unexpected error: %v", err)
	}
	if !resp.User.IsAdmin {
		t.Error("allow-listed phone should resolve to an admin identity")
	}
	if f.profile.profiles["+15550000001"].Role != model.RoleAdmin {
		t.Error("profile role should be admin")
	}
}

func TestVerifyCode_PromotesExistingProfile(t *testing.T) {
	f := newFixture()

	// 先以普通用户身份注册
	resp := f.requestAndVerify(t, "+15557654321")
	if resp.User.IsAdmin {
		t.Fatal("should start as a regular user")
	}

	// 号码进入白名单后，下一次验证提升角色
	f.svc.cfg.Auth.AdminPhones = append(f.svc.cfg.Auth.AdminPhones, "+15557654321")
	resp = f.requestAndVerify(t, "+15557654321")
	if !resp.User.IsAdmin {
		t.Error("re-verification should promote the allow-listed phone to admin")
	}
}

func TestVerifyCode_DemoMode(t *testing.T) {
	f := newFixture()
	f.svc.cfg.Auth.OTP.DemoMode = true
	ctx := context.Background()

	// demo 模式下不比对已下发的验证码，只验格式
	resp, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: "123456"})
	if err != nil {
		t.Fatalf("VerifyCode() unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("Success should be true")
	}

	// 格式不合法仍然拒绝
	_, err = f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: "12345"})
	if !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestVerifyCode_ResetsSharedPassword(t *testing.T) {
	f := newFixture()

	resp := f.requestAndVerify(t, "+15551234567")
	user := f.auth.users[resp.User.ID]
	firstHash := user.PasswordHash
	if firstHash == "" {
		t.Fatal("password hash should be set")
	}

	// 重复验证重置为共享密码（bcrypt 盐不同，哈希必然变化）
	f.requestAndVerify(t, "+15551234567")
	if f.auth.users[resp.User.ID].PasswordHash == firstHash {
		t.Error("re-verification should rewrite the password hash")
	}
}

func TestVerifyCode_RateLimited(t *testing.T) {
	f := newFixture()
	f.svc.limiter = newLimiter(time.Minute, 3)
	ctx := context.Background()

	// 桶耗尽前错误验证码报 ErrInvalidInput
	for i := 0; i < 3; i++ {
		_, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: "000000"})
		if !errors.Is(err, types.ErrInvalidInput) {
			t.Fatalf("attempt %d: error = %v, want ErrInvalidInput", i, err)
		}
	}

	// 之后即便验证码正确也被限流，TTL 内不可穷举
	_, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: "000000"})
	if !errors.Is(err, types.ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}

	// 其他号码不受影响
	_, err = f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15557654321", Code: "000000"})
	if !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("other phone: error = %v, want ErrInvalidInput", err)
	}
}

func TestVerifyCode_StoreDeleteFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reqResp, err := f.svc.RequestCode(ctx, &RequestCodeRequest{PhoneNumber: "+15551234567"})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	// 消费验证码失败不阻断本次验证
	f.store.delFailed = true
	resp, err := f.svc.VerifyCode(ctx, &VerifyCodeRequest{PhoneNumber: "+15551234567", Code: reqResp.Code})
	if err != nil {
		t.Fatalf("VerifyCode() unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("Success should be true")
	}
}

// ========== SyntheticEmail 测试 ==========

func TestSyntheticEmail(t *testing.T) {
	cases := []struct {
		phone string
		want  string
	}{
		{"15551234567", "15551234567@phone.temp"},
		{"+1 (555) 123-4567", "15551234567@phone.temp"},
		{"+86-138-0000-0000", "8613800000000@phone.temp"},
	}
	for _, c := range cases {
		if got := SyntheticEmail(c.phone); got != c.want {
			t.Errorf("SyntheticEmail(%q) = %q, want %q", c.phone, got, c.want)
		}
	}
}

// ========== generateCode 测试 ==========

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateCode()
		if !codePattern.MatchString(code) {
			t.Fatalf("generateCode() = %q, want 6 digits", code)
		}
	}
}
