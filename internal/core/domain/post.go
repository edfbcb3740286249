package domain

import "time"

// PostKind enumerates the post types stored in the community posts table.
type PostKind string

const (
	PostKindGeneral      PostKind = "GENERAL"
	PostKindVerification PostKind = "VERIFICATION"
)

// Visibility is the tri-state visibility toggle on a general post.
// Unset marks rows created before the toggle existed and reads as Public.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityUnset   Visibility = "UNSET"
)

// VisibilityFromBoolPtr maps the persisted nullable is_public column onto the tri-state.
func VisibilityFromBoolPtr(isPublic *bool) Visibility {
	switch {
	case isPublic == nil:
		return VisibilityUnset
	case *isPublic:
		return VisibilityPublic
	default:
		return VisibilityPrivate
	}
}

// BoolPtr maps the tri-state back onto the nullable is_public column.
func (v Visibility) BoolPtr() *bool {
	switch v {
	case VisibilityPublic:
		b := true
		return &b
	case VisibilityPrivate:
		b := false
		return &b
	default:
		return nil
	}
}

// Post mirrors the persisted representation in the community posts table.
type Post struct {
	ID         int64
	AuthorID   int64
	Kind       PostKind
	Title      string
	Content    string
	Visibility Visibility
	Deleted    bool
	CreatedAt  time.Time
}

// Viewer identifies who is looking at a post: either anonymous or an
// authenticated user. The zero value is the anonymous viewer.
type Viewer struct {
	UserID        int64
	Authenticated bool
}

// Anonymous is the unauthenticated viewer.
var Anonymous = Viewer{}

// AuthenticatedViewer constructs a viewer for the given user.
func AuthenticatedViewer(userID int64) Viewer {
	return Viewer{UserID: userID, Authenticated: true}
}

// VisibleTo decides whether the post is observable by the viewer.
// The outcome depends only on (visibility, deleted, author) and the viewer
// identity; it is deterministic and safe to call concurrently.
//
// Deleted posts are never visible. Non-general posts are governed by other
// collaborators' rules and pass through here. Unset visibility predates the
// toggle and reads as Public.
func (p Post) VisibleTo(viewer Viewer) bool {
	if p.Deleted {
		return false
	}
	if p.Kind != PostKindGeneral {
		return true
	}

	switch p.Visibility {
	case VisibilityPublic, VisibilityUnset:
		return true
	case VisibilityPrivate:
		return viewer.Authenticated && viewer.UserID == p.AuthorID
	default:
		// Unknown visibility states fail closed.
		return false
	}
}
