package port

import (
	"context"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

// EventPublisher publishes community domain events to the platform event bus.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, event domain.PostCreatedEvent) error
	PublishPostVisibilityChanged(ctx context.Context, event domain.PostVisibilityChangedEvent) error
	PublishPostDeleted(ctx context.Context, event domain.PostDeletedEvent) error
}
