package port

import (
	"context"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

// PostRepository abstracts persistence for community posts.
type PostRepository interface {
	// Create inserts a post and returns its assigned identifier.
	Create(ctx context.Context, post domain.Post) (int64, error)
	// GetByID retrieves a non-deleted post by identifier.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	// ListVisible returns one page of non-deleted posts observable by the
	// viewer, newest first, plus the total count of matching rows. The
	// visibility predicate is applied before pagination.
	ListVisible(ctx context.Context, viewer domain.Viewer, page, size int) ([]domain.Post, int64, error)
	// UpdateVisibility changes the is_public toggle on a post.
	UpdateVisibility(ctx context.Context, id int64, visibility domain.Visibility) error
	// SoftDelete flags a post as deleted.
	SoftDelete(ctx context.Context, id int64) error
	// ListPrivateGeneralPosts returns all non-deleted private general posts
	// ordered by id descending. Used as the ground-truth read for
	// visibility verification.
	ListPrivateGeneralPosts(ctx context.Context) ([]domain.Post, error)
}
