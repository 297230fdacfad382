package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/middleware"
	"github.com/talkbase/forum-backend/internal/service"
)

// PostHandler handles post endpoints
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListByThread handles GET /api/threads/:id/posts
func (h *PostHandler) ListByThread(c *gin.Context) {
	threadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.postService.ListByThread(threadID, parsePagination(c))
	if err != nil {
		common.RespondError(c, err, "failed to list posts")
		return
	}
	common.SuccessWithMeta(c, result.Items, result.Meta())
}

// Create handles POST /api/threads/:id/posts
func (h *PostHandler) Create(c *gin.Context) {
	threadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	post, err := h.postService.CreateReply(threadID, middleware.GetUserID(c), &req)
	if err != nil {
		common.RespondError(c, err, "failed to create post")
		return
	}
	common.Created(c, post)
}

// Get handles GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	post, err := h.postService.Get(id)
	if err != nil {
		common.RespondError(c, err, "failed to load post")
		return
	}
	common.Success(c, post)
}

// Update handles PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	post, err := h.postService.Edit(id, middleware.GetUserID(c), &req)
	if err != nil {
		common.RespondError(c, err, "failed to update post")
		return
	}
	common.Success(c, post)
}

// Delete handles DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Delete(id, middleware.GetUserID(c)); err != nil {
		common.RespondError(c, err, "failed to delete post")
		return
	}
	common.Success(c, gin.H{"deleted": true})
}

// History handles GET /api/posts/:id/history
func (h *PostHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	revisions, err := h.postService.ListHistory(id)
	if err != nil {
		common.RespondError(c, err, "failed to load post history")
		return
	}
	common.Success(c, revisions)
}

// HistoryVersion handles GET /api/posts/:id/history/:version
func (h *PostHandler) HistoryVersion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	version, err := strconv.ParseUint(c.Param("version"), 10, 32)
	if err != nil || version == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid version", err)
		return
	}

	revision, err := h.postService.GetVersion(id, uint(version))
	if err != nil {
		common.RespondError(c, err, "failed to load post revision")
		return
	}
	common.Success(c, revision)
}
