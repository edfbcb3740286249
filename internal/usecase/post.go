package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/core/port"
	"github.com/arklim/social-platform-community/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

var (
	// ErrPostNotFound indicates no non-deleted post exists with the requested id.
	ErrPostNotFound = errors.New("post not found")
	// ErrPostAccessDenied indicates the post exists but is not observable by the viewer.
	ErrPostAccessDenied = errors.New("post access denied")
	// ErrNotPostAuthor indicates a mutation was attempted by someone other than the author.
	ErrNotPostAuthor = errors.New("viewer is not the post author")
	// ErrPostTitleRequired indicates a post was submitted without a title.
	ErrPostTitleRequired = errors.New("post title is required")
)

// CreatePostInput captures the payload for creating a community post.
type CreatePostInput struct {
	Title    string
	Content  string
	IsPublic bool
}

// PostService owns viewer-facing post operations. Every read path goes
// through the visibility rule; the guard on single-post fetches and the
// list predicate share it so they cannot drift apart.
type PostService struct {
	posts  port.PostRepository
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewPostService constructs PostService.
func NewPostService(posts port.PostRepository, events port.EventPublisher, log *zap.Logger) *PostService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostService{posts: posts, events: events, logger: log, now: time.Now}
}

// WithClock injects a custom clock, primarily for tests.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	if now != nil {
		s.now = now
	}
	return s
}

// ListPosts returns one page of posts observable by the viewer, newest
// first, plus the total count. Page size is clamped to a bounded maximum.
func (s *PostService) ListPosts(ctx context.Context, viewer domain.Viewer, page, size int) ([]domain.Post, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	posts, total, err := s.posts.ListVisible(ctx, viewer, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}

// GetPost fetches a single post, applying the visibility rule. A missing
// or deleted post is ErrPostNotFound; an existing post hidden from the
// viewer is ErrPostAccessDenied, so callers can tell the two apart.
func (s *PostService) GetPost(ctx context.Context, id int64, viewer domain.Viewer) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("fetch post: %w", err)
	}

	if !post.VisibleTo(viewer) {
		return nil, ErrPostAccessDenied
	}

	return post, nil
}

// CreatePost persists a new general post for the author. Rows created here
// always carry explicit visibility; the unset state exists only for legacy data.
func (s *PostService) CreatePost(ctx context.Context, authorID int64, input CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}

	visibility := domain.VisibilityPrivate
	if input.IsPublic {
		visibility = domain.VisibilityPublic
	}

	post := domain.Post{
		AuthorID:   authorID,
		Kind:       domain.PostKindGeneral,
		Title:      title,
		Content:    input.Content,
		Visibility: visibility,
		CreatedAt:  s.now().UTC(),
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.ID = id

	if s.events != nil {
		event := domain.PostCreatedEvent{
			PostID:     post.ID,
			AuthorID:   post.AuthorID,
			Kind:       post.Kind,
			Visibility: post.Visibility,
			CreatedAt:  post.CreatedAt,
		}
		if err := s.events.PublishPostCreated(ctx, event); err != nil {
			s.logger.Warn("publish post created event failed", zap.Int64("post_id", post.ID), zap.Error(err))
		}
	}

	return &post, nil
}

// ChangeVisibility toggles a post between public and private. Only the
// author may do this; the post must be observable by the viewer first so a
// third party cannot distinguish someone else's private post from a
// missing one through this path.
func (s *PostService) ChangeVisibility(ctx context.Context, id int64, viewer domain.Viewer, visibility domain.Visibility) error {
	if visibility != domain.VisibilityPublic && visibility != domain.VisibilityPrivate {
		return fmt.Errorf("visibility must be public or private")
	}

	post, err := s.GetPost(ctx, id, viewer)
	if err != nil {
		return err
	}

	if !viewer.Authenticated || viewer.UserID != post.AuthorID {
		return ErrNotPostAuthor
	}

	if post.Visibility == visibility {
		return nil
	}

	if err := s.posts.UpdateVisibility(ctx, id, visibility); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("update post visibility: %w", err)
	}

	if s.events != nil {
		event := domain.PostVisibilityChangedEvent{
			PostID:        id,
			AuthorID:      post.AuthorID,
			OldVisibility: post.Visibility,
			NewVisibility: visibility,
			ChangedAt:     s.now().UTC(),
		}
		if err := s.events.PublishPostVisibilityChanged(ctx, event); err != nil {
			s.logger.Warn("publish visibility changed event failed", zap.Int64("post_id", id), zap.Error(err))
		}
	}

	return nil
}

// DeletePost soft-deletes a post. Author only.
func (s *PostService) DeletePost(ctx context.Context, id int64, viewer domain.Viewer) error {
	post, err := s.GetPost(ctx, id, viewer)
	if err != nil {
		return err
	}

	if !viewer.Authenticated || viewer.UserID != post.AuthorID {
		return ErrNotPostAuthor
	}

	if err := s.posts.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("soft delete post: %w", err)
	}

	if s.events != nil {
		event := domain.PostDeletedEvent{
			PostID:    id,
			AuthorID:  post.AuthorID,
			DeletedAt: s.now().UTC(),
		}
		if err := s.events.PublishPostDeleted(ctx, event); err != nil {
			s.logger.Warn("publish post deleted event failed", zap.Int64("post_id", id), zap.Error(err))
		}
	}

	return nil
}
