package usecase

import (
	"context"
	"testing"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

type mockPostRepository struct {
	t *testing.T

	createFn                  func(ctx context.Context, post domain.Post) (int64, error)
	getByIDFn                 func(ctx context.Context, id int64) (*domain.Post, error)
	listVisibleFn             func(ctx context.Context, viewer domain.Viewer, page, size int) ([]domain.Post, int64, error)
	updateVisibilityFn        func(ctx context.Context, id int64, visibility domain.Visibility) error
	softDeleteFn              func(ctx context.Context, id int64) error
	listPrivateGeneralPostsFn func(ctx context.Context) ([]domain.Post, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post domain.Post) (int64, error) {
	if m.createFn == nil {
		m.t.Fatal("unexpected call to Create")
	}
	return m.createFn(ctx, post)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.getByIDFn == nil {
		m.t.Fatal("unexpected call to GetByID")
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockPostRepository) ListVisible(ctx context.Context, viewer domain.Viewer, page, size int) ([]domain.Post, int64, error) {
	if m.listVisibleFn == nil {
		m.t.Fatal("unexpected call to ListVisible")
	}
	return m.listVisibleFn(ctx, viewer, page, size)
}

func (m *mockPostRepository) UpdateVisibility(ctx context.Context, id int64, visibility domain.Visibility) error {
	if m.updateVisibilityFn == nil {
		m.t.Fatal("unexpected call to UpdateVisibility")
	}
	return m.updateVisibilityFn(ctx, id, visibility)
}

func (m *mockPostRepository) SoftDelete(ctx context.Context, id int64) error {
	if m.softDeleteFn == nil {
		m.t.Fatal("unexpected call to SoftDelete")
	}
	return m.softDeleteFn(ctx, id)
}

func (m *mockPostRepository) ListPrivateGeneralPosts(ctx context.Context) ([]domain.Post, error) {
	if m.listPrivateGeneralPostsFn == nil {
		m.t.Fatal("unexpected call to ListPrivateGeneralPosts")
	}
	return m.listPrivateGeneralPostsFn(ctx)
}

type mockUserRepository struct {
	t *testing.T

	getByIDFn         func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	findOtherActiveFn func(ctx context.Context, excludeID int64) (*domain.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn == nil {
		m.t.Fatal("unexpected call to GetByID")
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		m.t.Fatal("unexpected call to GetByEmail")
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepository) FindOtherActive(ctx context.Context, excludeID int64) (*domain.User, error) {
	if m.findOtherActiveFn == nil {
		m.t.Fatal("unexpected call to FindOtherActive")
	}
	return m.findOtherActiveFn(ctx, excludeID)
}

type mockEventPublisher struct {
	created           []domain.PostCreatedEvent
	visibilityChanged []domain.PostVisibilityChangedEvent
	deleted           []domain.PostDeletedEvent
	err               error
}

func (m *mockEventPublisher) PublishPostCreated(_ context.Context, event domain.PostCreatedEvent) error {
	m.created = append(m.created, event)
	return m.err
}

func (m *mockEventPublisher) PublishPostVisibilityChanged(_ context.Context, event domain.PostVisibilityChangedEvent) error {
	m.visibilityChanged = append(m.visibilityChanged, event)
	return m.err
}

func (m *mockEventPublisher) PublishPostDeleted(_ context.Context, event domain.PostDeletedEvent) error {
	m.deleted = append(m.deleted, event)
	return m.err
}
