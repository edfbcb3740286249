package handlers

import (
	"time"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

// DataResponse is the envelope wrapping every successful payload.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// PostPayload is the wire representation of a community post.
type PostPayload struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	IsPublic  *bool     `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// PostListData carries one page of posts plus paging metadata.
type PostListData struct {
	Content       []PostPayload `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"total_elements"`
}

// LoginRequest is the login payload. The identifier field is named "id"
// to match the platform's existing clients.
type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginData carries the issued access token.
type LoginData struct {
	AccessToken string `json:"accessToken"`
}

// CreatePostRequest is the payload for publishing a post.
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	IsPublic *bool  `json:"is_public" binding:"required"`
}

// UpdateVisibilityRequest is the payload for toggling post visibility.
type UpdateVisibilityRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

func toPostPayload(post domain.Post) PostPayload {
	return PostPayload{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Kind:      string(post.Kind),
		Title:     post.Title,
		Content:   post.Content,
		IsPublic:  post.Visibility.BoolPtr(),
		CreatedAt: post.CreatedAt,
	}
}

func toPostPayloads(posts []domain.Post) []PostPayload {
	payloads := make([]PostPayload, 0, len(posts))
	for _, post := range posts {
		payloads = append(payloads, toPostPayload(post))
	}
	return payloads
}
