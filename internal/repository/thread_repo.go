package repository

import (
	"errors"
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"gorm.io/gorm"
)

// ThreadFilter narrows thread listing and search
type ThreadFilter struct {
	// Query matches title or content by substring
	Query string
	// CategoryIDs keeps threads attached to at least one of the categories
	CategoryIDs []uint64
	// AuthorID restricts to a single author
	AuthorID uint64
	// CreatedAfter is a lower bound on created_at; zero means unbounded
	CreatedAfter time.Time
}

// ThreadRepository thread data access
type ThreadRepository interface {
	WithTx(tx *gorm.DB) ThreadRepository
	FindByID(id uint64) (*domain.Thread, error)
	Create(thread *domain.Thread, categoryIDs []uint64) error
	// UpdateVersioned persists the mutated thread only if the row still holds
	// fromVersion; returns the number of rows matched.
	UpdateVersioned(thread *domain.Thread, fromVersion uint) (int64, error)
	ReplaceCategories(thread *domain.Thread, categoryIDs []uint64) error
	Delete(id uint64) error
	SetLocked(id uint64, locked bool) error
	IncrementViewCount(id uint64) error
	Count(f ThreadFilter) (int64, error)
	FindPage(f ThreadFilter, page, perPage int) ([]*domain.Thread, error)
	CountSince(since time.Time) (int64, error)
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) WithTx(tx *gorm.DB) ThreadRepository {
	return &threadRepository{db: tx}
}

func (r *threadRepository) FindByID(id uint64) (*domain.Thread, error) {
	var thread domain.Thread
	err := r.db.Preload("Categories").Where("id = ?", id).First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	return &thread, err
}

func (r *threadRepository) Create(thread *domain.Thread, categoryIDs []uint64) error {
	if err := r.db.Create(thread).Error; err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		return r.ReplaceCategories(thread, categoryIDs)
	}
	return nil
}

func (r *threadRepository) UpdateVersioned(thread *domain.Thread, fromVersion uint) (int64, error) {
	res := r.db.Model(&domain.Thread{}).
		Where("id = ? AND current_version = ?", thread.ID, fromVersion).
		Updates(map[string]interface{}{
			"title":           thread.Title,
			"content":         thread.Content,
			"current_version": thread.CurrentVersion,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *threadRepository) ReplaceCategories(thread *domain.Thread, categoryIDs []uint64) error {
	var categories []domain.Category
	if len(categoryIDs) > 0 {
		if err := r.db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
	}
	return r.db.Model(thread).Association("Categories").Replace(categories)
}

func (r *threadRepository) Delete(id uint64) error {
	if err := r.db.Exec("DELETE FROM thread_categories WHERE thread_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Thread{}, id).Error
}

func (r *threadRepository) SetLocked(id uint64, locked bool) error {
	res := r.db.Model(&domain.Thread{}).Where("id = ?", id).Update("is_locked", locked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *threadRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&domain.Thread{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *threadRepository) query(f ThreadFilter) *gorm.DB {
	q := r.db.Model(&domain.Thread{})
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("(title LIKE ? OR content LIKE ?)", like, like)
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("id IN (SELECT thread_id FROM thread_categories WHERE category_id IN ?)", f.CategoryIDs)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if !f.CreatedAfter.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedAfter)
	}
	return q
}

func (r *threadRepository) Count(f ThreadFilter) (int64, error) {
	var total int64
	err := r.query(f).Count(&total).Error
	return total, err
}

func (r *threadRepository) FindPage(f ThreadFilter, page, perPage int) ([]*domain.Thread, error) {
	var threads []*domain.Thread
	offset := (page - 1) * perPage
	err := r.query(f).Preload("Categories").
		Order("id DESC").Offset(offset).Limit(perPage).Find(&threads).Error
	return threads, err
}

func (r *threadRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Thread{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
