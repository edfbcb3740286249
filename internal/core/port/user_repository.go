package port

import (
	"context"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

// UserRepository abstracts read access to community users. The visibility
// subsystem never mutates users.
type UserRepository interface {
	// GetByID retrieves a non-deleted user by identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByEmail retrieves a non-deleted user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindOtherActive returns any non-deleted user with a different
	// identifier, used to impersonate a third party during verification.
	FindOtherActive(ctx context.Context, excludeID int64) (*domain.User, error)
}
