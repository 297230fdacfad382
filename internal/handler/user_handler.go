package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
)

// UserHandler handles public user endpoints
type UserHandler struct {
	users repository.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	f := repository.UserFilter{Query: c.Query("q")}
	result, err := common.Paginate(parsePagination(c),
		func() (int64, error) { return h.users.Count(f) },
		func(page, perPage int) ([]*domain.User, error) { return h.users.FindPage(f, page, perPage) },
	)
	if err != nil {
		common.RespondError(c, err, "failed to list users")
		return
	}

	profiles := make([]*domain.UserProfile, len(result.Items))
	for i, user := range result.Items {
		profiles[i] = user.ToProfile()
	}
	common.SuccessWithMeta(c, profiles, result.Meta())
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil {
		common.RespondError(c, err, "failed to load user")
		return
	}
	if user.IsDeleted() {
		common.ErrorResponse(c, http.StatusNotFound, "user not found", nil)
		return
	}
	common.Success(c, user.ToProfile())
}
