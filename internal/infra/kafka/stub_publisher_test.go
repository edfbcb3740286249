package kafka

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

func TestStubPublisher(t *testing.T) {
	publisher := NewStubPublisher(zaptest.NewLogger(t))
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := publisher.PublishPostCreated(ctx, domain.PostCreatedEvent{
		PostID:     1,
		AuthorID:   10,
		Kind:       domain.PostKindGeneral,
		Visibility: domain.VisibilityPrivate,
		CreatedAt:  at,
	}); err != nil {
		t.Errorf("PublishPostCreated() error: %v", err)
	}

	if err := publisher.PublishPostVisibilityChanged(ctx, domain.PostVisibilityChangedEvent{
		PostID:        1,
		AuthorID:      10,
		OldVisibility: domain.VisibilityPrivate,
		NewVisibility: domain.VisibilityPublic,
		ChangedAt:     at,
	}); err != nil {
		t.Errorf("PublishPostVisibilityChanged() error: %v", err)
	}

	if err := publisher.PublishPostDeleted(ctx, domain.PostDeletedEvent{
		PostID:    1,
		AuthorID:  10,
		DeletedAt: at,
	}); err != nil {
		t.Errorf("PublishPostDeleted() error: %v", err)
	}
}
