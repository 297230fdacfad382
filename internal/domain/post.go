package domain

import "time"

// Post represents a reply within a thread. Versioned the same way threads
// are; a locked thread blocks new posts but not edits to existing ones.
type Post struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ThreadID       uint64    `gorm:"column:thread_id;index" json:"thread_id"`
	AuthorID       uint64    `gorm:"column:author_id;index" json:"author_id"`
	Content        string    `gorm:"column:content;type:mediumtext" json:"content"`
	CurrentVersion uint      `gorm:"column:current_version;default:1" json:"current_version"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// CreatePostRequest payload for POST /api/threads/:id/posts
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest payload for PUT /api/posts/:id
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}
