package domain

import "time"

// Thread represents a discussion thread. Edits are versioned: every
// successful edit bumps CurrentVersion by one and snapshots the pre-edit
// state into content_revisions.
type Thread struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID       uint64     `gorm:"column:author_id;index" json:"author_id"`
	Title          string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Content        string     `gorm:"column:content;type:mediumtext" json:"content"`
	CurrentVersion uint       `gorm:"column:current_version;default:1" json:"current_version"`
	IsLocked       bool       `gorm:"column:is_locked;default:false" json:"is_locked"`
	ViewCount      uint       `gorm:"column:view_count;default:0" json:"view_count"`
	Categories     []Category `gorm:"many2many:thread_categories" json:"categories,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Thread) TableName() string { return "threads" }

// CreateThreadRequest payload for POST /api/threads
type CreateThreadRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Content     string   `json:"content" binding:"required"`
	CategoryIDs []uint64 `json:"category_ids"`
}

// UpdateThreadRequest payload for PUT /api/threads/:id.
// Nil fields are left untouched.
type UpdateThreadRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=255"`
	Content     *string  `json:"content,omitempty"`
	CategoryIDs []uint64 `json:"category_ids,omitempty"`
}
