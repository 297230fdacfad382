package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
)

// CategoryHandler handles category CRUD
type CategoryHandler struct {
	categories repository.CategoryRepository
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.FindAll()
	if err != nil {
		common.RespondError(c, err, "failed to list categories")
		return
	}
	common.Success(c, categories)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req domain.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.categories.Create(category); err != nil {
		common.RespondError(c, err, "failed to create category")
		return
	}
	common.Created(c, category)
}

// Update handles PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req domain.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		common.RespondError(c, err, "failed to load category")
		return
	}
	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description
	if err := h.categories.Update(category); err != nil {
		common.RespondError(c, err, "failed to update category")
		return
	}
	common.Success(c, category)
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(id); err != nil {
		common.RespondError(c, err, "failed to delete category")
		return
	}
	common.Success(c, gin.H{"deleted": true})
}
