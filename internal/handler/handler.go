package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
)

// parsePagination reads page/per_page query params. Out-of-range values are
// normalized downstream, never rejected.
func parsePagination(c *gin.Context) common.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(common.DefaultPerPage)))
	return common.PageRequest{Page: page, PerPage: perPage}
}

// parseID reads a numeric path parameter
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		common.ErrorResponse(c, 400, "invalid "+name, err)
		return 0, false
	}
	return id, true
}

// parseIDList reads a comma-separated list of numeric ids from a query param
func parseIDList(c *gin.Context, name string) []uint64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil && id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
