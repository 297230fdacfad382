package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/service"
)

// SearchHandler handles the combined search endpoint
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	filters := service.SearchFilters{
		DateRange:   c.DefaultQuery("date_range", service.DateRangeAll),
		CategoryIDs: parseIDList(c, "category_ids"),
		Kind:        c.Query("kind"),
	}
	if authorID, err := strconv.ParseUint(c.Query("author_id"), 10, 64); err == nil {
		filters.AuthorID = authorID
	}

	result, err := h.searchService.Search(c.Query("q"), parsePagination(c), filters)
	if err != nil {
		common.RespondError(c, err, "search failed")
		return
	}
	common.Success(c, result)
}
