package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/core/port"
	"github.com/arklim/social-platform-community/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	PostID    int64            `json:"post_id,omitempty"`
	AuthorID  int64            `json:"author_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType string, postID, authorID int64, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		PostID:    postID,
		AuthorID:  authorID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: envelopeMetadata{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishPostCreated publishes community.post.created events.
func (p *EventPublisher) PublishPostCreated(ctx context.Context, event domain.PostCreatedEvent) error {
	payload := struct {
		PostID     int64     `json:"post_id"`
		AuthorID   int64     `json:"author_id"`
		Kind       string    `json:"kind"`
		Visibility string    `json:"visibility"`
		CreatedAt  time.Time `json:"created_at"`
	}{
		PostID:     event.PostID,
		AuthorID:   event.AuthorID,
		Kind:       string(event.Kind),
		Visibility: string(event.Visibility),
		CreatedAt:  event.CreatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "community.post.created", event.PostID, event.AuthorID, event.CreatedAt, payload)
}

// PublishPostVisibilityChanged publishes community.post.visibility_changed events.
func (p *EventPublisher) PublishPostVisibilityChanged(ctx context.Context, event domain.PostVisibilityChangedEvent) error {
	payload := struct {
		PostID        int64     `json:"post_id"`
		AuthorID      int64     `json:"author_id"`
		OldVisibility string    `json:"old_visibility"`
		NewVisibility string    `json:"new_visibility"`
		ChangedAt     time.Time `json:"changed_at"`
	}{
		PostID:        event.PostID,
		AuthorID:      event.AuthorID,
		OldVisibility: string(event.OldVisibility),
		NewVisibility: string(event.NewVisibility),
		ChangedAt:     event.ChangedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "community.post.visibility_changed", event.PostID, event.AuthorID, event.ChangedAt, payload)
}

// PublishPostDeleted publishes community.post.deleted events.
func (p *EventPublisher) PublishPostDeleted(ctx context.Context, event domain.PostDeletedEvent) error {
	payload := struct {
		PostID    int64     `json:"post_id"`
		AuthorID  int64     `json:"author_id"`
		DeletedAt time.Time `json:"deleted_at"`
	}{
		PostID:    event.PostID,
		AuthorID:  event.AuthorID,
		DeletedAt: event.DeletedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "community.post.deleted", event.PostID, event.AuthorID, event.DeletedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
