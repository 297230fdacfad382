package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/handler"
	"github.com/talkbase/forum-backend/internal/middleware"
	"github.com/talkbase/forum-backend/pkg/jwt"
)

// Handlers bundles everything route registration needs
type Handlers struct {
	Auth     *handler.AuthHandler
	Thread   *handler.ThreadHandler
	Post     *handler.PostHandler
	Category *handler.CategoryHandler
	Search   *handler.SearchHandler
	User     *handler.UserHandler
	Admin    *handler.AdminHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	auth := middleware.JWTAuth(jwtManager)
	admin := middleware.RequireAdmin()

	api := router.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.GET("/me", auth, h.Auth.Me)

	// Categories
	categories := api.Group("/categories")
	categories.GET("", h.Category.List)
	categories.POST("", auth, admin, h.Category.Create)
	categories.PUT("/:id", auth, admin, h.Category.Update)
	categories.DELETE("/:id", auth, admin, h.Category.Delete)

	// Threads
	threads := api.Group("/threads")
	threads.GET("", h.Thread.List)
	threads.POST("", auth, h.Thread.Create)
	threads.GET("/:id", h.Thread.Get)
	threads.PUT("/:id", auth, h.Thread.Update)
	threads.DELETE("/:id", auth, h.Thread.Delete)
	threads.POST("/:id/lock", auth, admin, h.Thread.Lock)
	threads.POST("/:id/unlock", auth, admin, h.Thread.Unlock)
	threads.GET("/:id/history", h.Thread.History)
	threads.GET("/:id/history/:version", h.Thread.HistoryVersion)

	// Posts (nested under threads for listing/creation)
	threads.GET("/:id/posts", h.Post.ListByThread)
	threads.POST("/:id/posts", auth, h.Post.Create)

	posts := api.Group("/posts")
	posts.GET("/:id", h.Post.Get)
	posts.PUT("/:id", auth, h.Post.Update)
	posts.DELETE("/:id", auth, h.Post.Delete)
	posts.GET("/:id/history", h.Post.History)
	posts.GET("/:id/history/:version", h.Post.HistoryVersion)

	// Search
	api.GET("/search", h.Search.Search)

	// Users
	users := api.Group("/users")
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)

	// Admin moderation
	adminGroup := api.Group("/admin", auth, admin)
	adminGroup.GET("/users", h.Admin.ListUsers)
	adminGroup.PUT("/users/:id/role", h.Admin.SetRole)
	adminGroup.POST("/users/:id/ban", h.Admin.Ban)
	adminGroup.DELETE("/users/:id/ban", h.Admin.Unban)
	adminGroup.DELETE("/users/:id", h.Admin.DeleteUser)
	adminGroup.GET("/stats", h.Admin.Stats)
}
