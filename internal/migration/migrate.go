package migration

import (
	"github.com/talkbase/forum-backend/internal/domain"
	"gorm.io/gorm"
)

// Run creates or updates the schema for all models. The unique index on
// content_revisions (entity_type, entity_id, version) is part of the model
// definition and backs the revision uniqueness invariant.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Thread{},
		&domain.Post{},
		&domain.Revision{},
	)
}
