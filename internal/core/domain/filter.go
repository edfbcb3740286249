package domain

import "sort"

// FilterVisible returns the posts observable by the viewer, newest first
// (id descending). The input slice is not modified.
func FilterVisible(posts []Post, viewer Viewer) []Post {
	visible := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.VisibleTo(viewer) {
			visible = append(visible, p)
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		return visible[i].ID > visible[j].ID
	})

	return visible
}

// Paginate slices an already-filtered sequence into the requested page.
// Filtering must happen before pagination; a page can never reintroduce a
// post the filter removed. Page numbering is zero-based.
func Paginate(posts []Post, page, size int) []Post {
	if page < 0 || size <= 0 {
		return []Post{}
	}

	start := page * size
	if start >= len(posts) {
		return []Post{}
	}

	end := start + size
	if end > len(posts) {
		end = len(posts)
	}

	out := make([]Post, end-start)
	copy(out, posts[start:end])
	return out
}
