package repository

import (
	"errors"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"gorm.io/gorm"
)

// RevisionRepository append-only access to content revision snapshots.
// Records are only ever inserted, or removed in bulk when the owning entity
// is deleted.
type RevisionRepository interface {
	WithTx(tx *gorm.DB) RevisionRepository
	Create(rev *domain.Revision) error
	// FindByEntity returns the full history of an entity, ascending by
	// version.
	FindByEntity(entityType domain.EntityType, entityID uint64) ([]*domain.Revision, error)
	FindByEntityAndVersion(entityType domain.EntityType, entityID uint64, version uint) (*domain.Revision, error)
	DeleteByEntity(entityType domain.EntityType, entityID uint64) error
	DeleteByEntities(entityType domain.EntityType, entityIDs []uint64) error
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) WithTx(tx *gorm.DB) RevisionRepository {
	return &revisionRepository{db: tx}
}

func (r *revisionRepository) Create(rev *domain.Revision) error {
	return r.db.Create(rev).Error
}

func (r *revisionRepository) FindByEntity(entityType domain.EntityType, entityID uint64) ([]*domain.Revision, error) {
	var revisions []*domain.Revision
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("version ASC").Find(&revisions).Error
	return revisions, err
}

func (r *revisionRepository) FindByEntityAndVersion(entityType domain.EntityType, entityID uint64, version uint) (*domain.Revision, error) {
	var revision domain.Revision
	err := r.db.Where("entity_type = ? AND entity_id = ? AND version = ?", entityType, entityID, version).
		First(&revision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	return &revision, err
}

func (r *revisionRepository) DeleteByEntity(entityType domain.EntityType, entityID uint64) error {
	return r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&domain.Revision{}).Error
}

func (r *revisionRepository) DeleteByEntities(entityType domain.EntityType, entityIDs []uint64) error {
	if len(entityIDs) == 0 {
		return nil
	}
	return r.db.Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Delete(&domain.Revision{}).Error
}
