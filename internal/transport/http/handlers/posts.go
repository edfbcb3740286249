package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/transport/http/middleware"
	"github.com/arklim/social-platform-community/internal/usecase"
)

// PostHandler serves the community post endpoints.
type PostHandler struct {
	posts  *usecase.PostService
	logger *zap.Logger
}

// NewPostHandler constructs PostHandler.
func NewPostHandler(posts *usecase.PostService, log *zap.Logger) *PostHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostHandler{posts: posts, logger: log}
}

var postErrorCases = []ErrorCase{
	{
		Err:     usecase.ErrPostNotFound,
		Status:  http.StatusNotFound,
		Code:    "POST_NOT_FOUND",
		Message: "post not found",
	},
	{
		Err:     usecase.ErrPostAccessDenied,
		Status:  http.StatusForbidden,
		Code:    "POST_PRIVATE_ACCESS_DENIED",
		Message: "you do not have access to this post",
	},
	{
		Err:     usecase.ErrNotPostAuthor,
		Status:  http.StatusForbidden,
		Code:    "POST_NOT_AUTHOR",
		Message: "only the author may modify this post",
	},
}

// List returns one page of posts observable by the viewer, newest first.
func (h *PostHandler) List(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	page := parseQueryInt(c, "page", 0)
	size := parseQueryInt(c, "size", 0)

	posts, total, err := h.posts.ListPosts(c.Request.Context(), viewer, page, size)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, postErrorCases)
		return
	}

	if size <= 0 {
		size = len(posts)
	}

	c.JSON(http.StatusOK, DataResponse{Data: PostListData{
		Content:       toPostPayloads(posts),
		Page:          page,
		Size:          size,
		TotalElements: total,
	}})
}

// Get returns a single post if the viewer may observe it.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	viewer := middleware.GetViewer(c)

	post, err := h.posts.GetPost(c.Request.Context(), id, viewer)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, postErrorCases)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: toPostPayload(*post)})
}

// Create publishes a new post authored by the authenticated viewer.
func (h *PostHandler) Create(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "title and is_public are required")
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), viewer.UserID, usecase.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: *req.IsPublic,
	})
	if err != nil {
		RespondWithMappedError(c, h.logger, err, append([]ErrorCase{
			{
				Err:     usecase.ErrPostTitleRequired,
				Status:  http.StatusBadRequest,
				Code:    "VALIDATION_FAILED",
				Message: "title must not be blank",
			},
		}, postErrorCases...))
		return
	}

	c.JSON(http.StatusCreated, DataResponse{Data: toPostPayload(*post)})
}

// UpdateVisibility toggles a post between public and private.
func (h *PostHandler) UpdateVisibility(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	viewer := middleware.GetViewer(c)

	var req UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "is_public is required")
		return
	}

	visibility := domain.VisibilityPrivate
	if *req.IsPublic {
		visibility = domain.VisibilityPublic
	}

	if err := h.posts.ChangeVisibility(c.Request.Context(), id, viewer, visibility); err != nil {
		RespondWithMappedError(c, h.logger, err, postErrorCases)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: gin.H{"id": id, "is_public": *req.IsPublic}})
}

// Delete soft-deletes a post authored by the viewer.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	viewer := middleware.GetViewer(c)

	if err := h.posts.DeletePost(c.Request.Context(), id, viewer); err != nil {
		RespondWithMappedError(c, h.logger, err, postErrorCases)
		return
	}

	c.Status(http.StatusNoContent)
}

func parsePathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "VALIDATION_FAILED", "post id must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
