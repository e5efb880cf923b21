// Package faq FAQ 服务单元测试
package faq

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/repository"
	"github.com/scootsupport/scootsupport/internal/service/types"
	"github.com/scootsupport/scootsupport/internal/testutil"
)

// mockFAQRepo 内存FAQ存储
type mockFAQRepo struct {
	faqs map[string]*model.FAQ
}

func (m *mockFAQRepo) Create(f *model.FAQ) error {
	m.faqs[f.ID] = f
	return nil
}

func (m *mockFAQRepo) GetByID(id string) (*model.FAQ, error) {
	if f, ok := m.faqs[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFAQRepo) List() ([]*model.FAQ, error) {
	var out []*model.FAQ
	for _, f := range m.faqs {
		out = append(out, f)
	}
	return out, nil
}

func (m *mockFAQRepo) ListActive() ([]*model.FAQ, error) {
	var out []*model.FAQ
	for _, f := range m.faqs {
		if f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFAQRepo) Update(f *model.FAQ) error {
	m.faqs[f.ID] = f
	return nil
}

func (m *mockFAQRepo) Delete(id string) error {
	delete(m.faqs, id)
	return nil
}

func newTestService() (*Service, *mockFAQRepo) {
	faqRepo := &mockFAQRepo{faqs: map[string]*model.FAQ{}}
	return NewService(&repository.Repositories{FAQ: faqRepo}), faqRepo
}

// ========== CreateFAQ 测试 ==========

func TestCreateFAQ_Defaults(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc, _ := newTestService()

	f, err := svc.CreateFAQ(context.Background(), &UpsertFAQRequest{
		Question: "How long does the battery last?",
		Answer:   "About 40 km per charge.",
		Tags:     []string{"battery", "range"},
	})
	assert.NoError(err)
	assert.NotEmpty(f.ID)
	// 未指定时回落到默认分类并启用
	assert.Equal("general", f.Category)
	assert.True(f.IsActive)
	assert.Len(len(f.Tags), 2)
}

func TestCreateFAQ_Explicit(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc, _ := newTestService()

	inactive := false
	f, err := svc.CreateFAQ(context.Background(), &UpsertFAQRequest{
		Question:     "Draft question",
		Answer:       "Draft answer",
		Category:     "maintenance",
		IsActive:     &inactive,
		DisplayOrder: 3,
	})
	assert.NoError(err)
	assert.Equal("maintenance", f.Category)
	assert.False(f.IsActive)
	assert.Equal(3, f.DisplayOrder)
}

// ========== Get / List 测试 ==========

func TestGetFAQ_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetFAQ(context.Background(), "missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListActiveFAQs(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateFAQ(ctx, &UpsertFAQRequest{Question: "q1", Answer: "a1"}); err != nil {
		t.Fatalf("CreateFAQ() unexpected error: %v", err)
	}
	inactive := false
	if _, err := svc.CreateFAQ(ctx, &UpsertFAQRequest{Question: "q2", Answer: "a2", IsActive: &inactive}); err != nil {
		t.Fatalf("CreateFAQ() unexpected error: %v", err)
	}

	active, err := svc.ListActiveFAQs(ctx)
	assert.NoError(err)
	assert.Len(len(active), 1)

	all, err := svc.ListFAQs(ctx)
	assert.NoError(err)
	assert.Len(len(all), 2)
}

// ========== Update / Delete 测试 ==========

func TestUpdateFAQ(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateFAQ(ctx, &UpsertFAQRequest{Question: "q", Answer: "a"})
	assert.NoError(err)

	inactive := false
	updated, err := svc.UpdateFAQ(ctx, created.ID, &UpsertFAQRequest{
		Question: "q2",
		Answer:   "a2",
		Tags:     []string{"warranty"},
		IsActive: &inactive,
	})
	assert.NoError(err)
	assert.Equal("q2", updated.Question)
	assert.Equal("a2", updated.Answer)
	assert.False(updated.IsActive)
	// 未提供分类时保留原值
	assert.Equal("general", updated.Category)
}

func TestUpdateFAQ_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateFAQ(context.Background(), "missing", &UpsertFAQRequest{Question: "q", Answer: "a"})
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteFAQ(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc, faqRepo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateFAQ(ctx, &UpsertFAQRequest{Question: "q", Answer: "a"})
	assert.NoError(err)

	assert.NoError(svc.DeleteFAQ(ctx, created.ID))
	assert.Len(len(faqRepo.faqs), 0)

	// 再删报 404
	if err := svc.DeleteFAQ(ctx, created.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
