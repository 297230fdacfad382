package domain

import "time"

// Category groups threads; a thread may belong to several categories.
type Category struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Slug        string    `gorm:"column:slug;type:varchar(50);uniqueIndex" json:"slug"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// CategoryRequest payload for category create/update
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        string  `json:"slug" binding:"required,max=50"`
	Description *string `json:"description,omitempty"`
}
