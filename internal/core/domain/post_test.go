package domain

import (
	"sync"
	"testing"
	"time"
)

func TestVisibleTo(t *testing.T) {
	author := AuthenticatedViewer(10)
	other := AuthenticatedViewer(20)

	tests := []struct {
		name   string
		post   Post
		viewer Viewer
		want   bool
	}{
		{
			name:   "public post visible to anonymous",
			post:   Post{ID: 1, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPublic},
			viewer: Anonymous,
			want:   true,
		},
		{
			name:   "public post visible to other user",
			post:   Post{ID: 1, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPublic},
			viewer: other,
			want:   true,
		},
		{
			name:   "private post visible to author",
			post:   Post{ID: 2, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate},
			viewer: author,
			want:   true,
		},
		{
			name:   "private post hidden from other user",
			post:   Post{ID: 2, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate},
			viewer: other,
			want:   false,
		},
		{
			name:   "private post hidden from anonymous",
			post:   Post{ID: 2, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate},
			viewer: Anonymous,
			want:   false,
		},
		{
			name:   "legacy unset visibility reads as public",
			post:   Post{ID: 3, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityUnset},
			viewer: other,
			want:   true,
		},
		{
			name:   "legacy unset visibility visible to anonymous",
			post:   Post{ID: 3, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityUnset},
			viewer: Anonymous,
			want:   true,
		},
		{
			name:   "deleted public post hidden from everyone",
			post:   Post{ID: 4, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPublic, Deleted: true},
			viewer: other,
			want:   false,
		},
		{
			name:   "deleted private post hidden even from author",
			post:   Post{ID: 5, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate, Deleted: true},
			viewer: author,
			want:   false,
		},
		{
			name:   "verification post passes through regardless of toggle",
			post:   Post{ID: 6, AuthorID: 10, Kind: PostKindVerification, Visibility: VisibilityPrivate},
			viewer: other,
			want:   true,
		},
		{
			name:   "unknown visibility state fails closed",
			post:   Post{ID: 7, AuthorID: 10, Kind: PostKindGeneral, Visibility: Visibility("SHARED")},
			viewer: author,
			want:   false,
		},
		{
			name:   "unauthenticated viewer with matching id does not count as author",
			post:   Post{ID: 8, AuthorID: 0, Kind: PostKindGeneral, Visibility: VisibilityPrivate},
			viewer: Viewer{UserID: 0, Authenticated: false},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.VisibleTo(tt.viewer); got != tt.want {
				t.Errorf("VisibleTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleToDeterministic(t *testing.T) {
	post := Post{ID: 1, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate}
	viewer := AuthenticatedViewer(20)

	first := post.VisibleTo(viewer)
	for i := 0; i < 100; i++ {
		if post.VisibleTo(viewer) != first {
			t.Fatal("VisibleTo must return the same result for the same inputs")
		}
	}
}

func TestVisibleToConcurrent(t *testing.T) {
	post := Post{ID: 1, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			viewer := AuthenticatedViewer(n)
			want := n == post.AuthorID
			for j := 0; j < 50; j++ {
				if post.VisibleTo(viewer) != want {
					t.Errorf("viewer %d: unexpected visibility", n)
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()
}

func TestVisibilityFromBoolPtr(t *testing.T) {
	truthy := true
	falsy := false

	if got := VisibilityFromBoolPtr(nil); got != VisibilityUnset {
		t.Errorf("nil = %v, want %v", got, VisibilityUnset)
	}
	if got := VisibilityFromBoolPtr(&truthy); got != VisibilityPublic {
		t.Errorf("true = %v, want %v", got, VisibilityPublic)
	}
	if got := VisibilityFromBoolPtr(&falsy); got != VisibilityPrivate {
		t.Errorf("false = %v, want %v", got, VisibilityPrivate)
	}
}

func TestVisibilityBoolPtr(t *testing.T) {
	if ptr := VisibilityUnset.BoolPtr(); ptr != nil {
		t.Errorf("unset must map to nil, got %v", *ptr)
	}
	if ptr := VisibilityPublic.BoolPtr(); ptr == nil || !*ptr {
		t.Error("public must map to true")
	}
	if ptr := VisibilityPrivate.BoolPtr(); ptr == nil || *ptr {
		t.Error("private must map to false")
	}
}

func samplePosts() []Post {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []Post{
		{ID: 1, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPublic, CreatedAt: now},
		{ID: 2, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPrivate, CreatedAt: now},
		{ID: 3, AuthorID: 20, Kind: PostKindGeneral, Visibility: VisibilityPrivate, CreatedAt: now},
		{ID: 4, AuthorID: 20, Kind: PostKindGeneral, Visibility: VisibilityUnset, CreatedAt: now},
		{ID: 5, AuthorID: 10, Kind: PostKindGeneral, Visibility: VisibilityPublic, Deleted: true, CreatedAt: now},
		{ID: 6, AuthorID: 30, Kind: PostKindVerification, Visibility: VisibilityPrivate, CreatedAt: now},
	}
}
