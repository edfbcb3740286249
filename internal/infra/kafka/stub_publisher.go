package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, postID, authorID int64, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.Int64("post_id", postID),
		zap.Int64("author_id", authorID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishPostCreated logs community.post.created events.
func (p *StubPublisher) PublishPostCreated(_ context.Context, event domain.PostCreatedEvent) error {
	payload := map[string]any{
		"post_id":    event.PostID,
		"author_id":  event.AuthorID,
		"kind":       event.Kind,
		"visibility": event.Visibility,
		"created_at": event.CreatedAt,
	}
	p.logEvent("community.post.created", event.PostID, event.AuthorID, event.CreatedAt, payload)
	return nil
}

// PublishPostVisibilityChanged logs community.post.visibility_changed events.
func (p *StubPublisher) PublishPostVisibilityChanged(_ context.Context, event domain.PostVisibilityChangedEvent) error {
	payload := map[string]any{
		"post_id":        event.PostID,
		"author_id":      event.AuthorID,
		"old_visibility": event.OldVisibility,
		"new_visibility": event.NewVisibility,
		"changed_at":     event.ChangedAt,
	}
	p.logEvent("community.post.visibility_changed", event.PostID, event.AuthorID, event.ChangedAt, payload)
	return nil
}

// PublishPostDeleted logs community.post.deleted events.
func (p *StubPublisher) PublishPostDeleted(_ context.Context, event domain.PostDeletedEvent) error {
	payload := map[string]any{
		"post_id":    event.PostID,
		"author_id":  event.AuthorID,
		"deleted_at": event.DeletedAt,
	}
	p.logEvent("community.post.deleted", event.PostID, event.AuthorID, event.DeletedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
