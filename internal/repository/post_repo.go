package repository

import (
	"errors"
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"gorm.io/gorm"
)

// PostFilter narrows post listing and search
type PostFilter struct {
	// Query matches content by substring
	Query string
	// ThreadID restricts to one thread
	ThreadID uint64
	// CategoryIDs restricts to posts whose parent thread carries one of the
	// categories
	CategoryIDs []uint64
	// AuthorID restricts to a single author
	AuthorID uint64
	// CreatedAfter is a lower bound on created_at; zero means unbounded
	CreatedAfter time.Time
}

// PostRepository post data access
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	FindByID(id uint64) (*domain.Post, error)
	Create(post *domain.Post) error
	// UpdateVersioned persists the mutated post only if the row still holds
	// fromVersion; returns the number of rows matched.
	UpdateVersioned(post *domain.Post, fromVersion uint) (int64, error)
	Delete(id uint64) error
	// FindIDsByThread lists post ids of a thread, used to cascade revision
	// deletion when the thread goes away.
	FindIDsByThread(threadID uint64) ([]uint64, error)
	DeleteByThread(threadID uint64) error
	Count(f PostFilter) (int64, error)
	FindPage(f PostFilter, page, perPage int) ([]*domain.Post, error)
	CountSince(since time.Time) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	return &post, err
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) UpdateVersioned(post *domain.Post, fromVersion uint) (int64, error) {
	res := r.db.Model(&domain.Post{}).
		Where("id = ? AND current_version = ?", post.ID, fromVersion).
		Updates(map[string]interface{}{
			"content":         post.Content,
			"current_version": post.CurrentVersion,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *postRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Post{}, id).Error
}

func (r *postRepository) FindIDsByThread(threadID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&domain.Post{}).Where("thread_id = ?", threadID).Pluck("id", &ids).Error
	return ids, err
}

func (r *postRepository) DeleteByThread(threadID uint64) error {
	return r.db.Where("thread_id = ?", threadID).Delete(&domain.Post{}).Error
}

func (r *postRepository) query(f PostFilter) *gorm.DB {
	q := r.db.Model(&domain.Post{})
	if f.Query != "" {
		q = q.Where("content LIKE ?", "%"+f.Query+"%")
	}
	if f.ThreadID != 0 {
		q = q.Where("thread_id = ?", f.ThreadID)
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("thread_id IN (SELECT thread_id FROM thread_categories WHERE category_id IN ?)", f.CategoryIDs)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if !f.CreatedAfter.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedAfter)
	}
	return q
}

func (r *postRepository) Count(f PostFilter) (int64, error) {
	var total int64
	err := r.query(f).Count(&total).Error
	return total, err
}

func (r *postRepository) FindPage(f PostFilter, page, perPage int) ([]*domain.Post, error) {
	var posts []*domain.Post
	offset := (page - 1) * perPage
	err := r.query(f).Order("id ASC").Offset(offset).Limit(perPage).Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Post{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
