package domain

import "time"

// PostCreatedEvent is emitted when a community post is persisted.
type PostCreatedEvent struct {
	EventID    string
	PostID     int64
	AuthorID   int64
	Kind       PostKind
	Visibility Visibility
	CreatedAt  time.Time
}

// PostVisibilityChangedEvent is emitted when an author toggles a post's visibility.
type PostVisibilityChangedEvent struct {
	EventID       string
	PostID        int64
	AuthorID      int64
	OldVisibility Visibility
	NewVisibility Visibility
	ChangedAt     time.Time
}

// PostDeletedEvent is emitted when an author soft-deletes a post.
type PostDeletedEvent struct {
	EventID   string
	PostID    int64
	AuthorID  int64
	DeletedAt time.Time
}
