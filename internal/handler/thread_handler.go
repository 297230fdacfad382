package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/middleware"
	"github.com/talkbase/forum-backend/internal/repository"
	"github.com/talkbase/forum-backend/internal/service"
)

// ThreadHandler handles thread endpoints
type ThreadHandler struct {
	threadService service.ThreadService
}

// NewThreadHandler creates a new ThreadHandler
func NewThreadHandler(threadService service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

// List handles GET /api/threads
func (h *ThreadHandler) List(c *gin.Context) {
	f := repository.ThreadFilter{
		CategoryIDs: parseIDList(c, "category_ids"),
	}
	if authorID, err := strconv.ParseUint(c.Query("author_id"), 10, 64); err == nil {
		f.AuthorID = authorID
	}

	result, err := h.threadService.List(parsePagination(c), f)
	if err != nil {
		common.RespondError(c, err, "failed to list threads")
		return
	}
	common.SuccessWithMeta(c, result.Items, result.Meta())
}

// Create handles POST /api/threads
func (h *ThreadHandler) Create(c *gin.Context) {
	var req domain.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	thread, err := h.threadService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		common.RespondError(c, err, "failed to create thread")
		return
	}
	common.Created(c, thread)
}

// Get handles GET /api/threads/:id
func (h *ThreadHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	thread, err := h.threadService.Get(id)
	if err != nil {
		common.RespondError(c, err, "failed to load thread")
		return
	}
	common.Success(c, thread)
}

// Update handles PUT /api/threads/:id
func (h *ThreadHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	thread, err := h.threadService.Edit(id, middleware.GetUserID(c), &req)
	if err != nil {
		common.RespondError(c, err, "failed to update thread")
		return
	}
	common.Success(c, thread)
}

// Delete handles DELETE /api/threads/:id
func (h *ThreadHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.threadService.Delete(id, middleware.GetUserID(c)); err != nil {
		common.RespondError(c, err, "failed to delete thread")
		return
	}
	common.Success(c, gin.H{"deleted": true})
}

// Lock handles POST /api/threads/:id/lock
func (h *ThreadHandler) Lock(c *gin.Context) {
	h.setLocked(c, true)
}

// Unlock handles POST /api/threads/:id/unlock
func (h *ThreadHandler) Unlock(c *gin.Context) {
	h.setLocked(c, false)
}

func (h *ThreadHandler) setLocked(c *gin.Context, locked bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.threadService.SetLocked(id, middleware.GetUserID(c), locked); err != nil {
		common.RespondError(c, err, "failed to change thread lock")
		return
	}
	common.Success(c, gin.H{"locked": locked})
}

// History handles GET /api/threads/:id/history
func (h *ThreadHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	revisions, err := h.threadService.ListHistory(id)
	if err != nil {
		common.RespondError(c, err, "failed to load thread history")
		return
	}
	common.Success(c, revisions)
}

// HistoryVersion handles GET /api/threads/:id/history/:version
func (h *ThreadHandler) HistoryVersion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	version, err := strconv.ParseUint(c.Param("version"), 10, 32)
	if err != nil || version == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid version", err)
		return
	}

	revision, err := h.threadService.GetVersion(id, uint(version))
	if err != nil {
		common.RespondError(c, err, "failed to load thread revision")
		return
	}
	common.Success(c, revision)
}
