package repository

import (
	"errors"
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserFilter narrows user listing and search
type UserFilter struct {
	// Query matches username by substring
	Query string
	// IncludeDeleted also returns soft-deleted accounts (admin listings)
	IncludeDeleted bool
}

// UserRepository user data access
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	FindByID(id uint64) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	Create(user *domain.User) error
	Update(user *domain.User) error
	Count(f UserFilter) (int64, error)
	FindPage(f UserFilter, page, perPage int) ([]*domain.User, error)
	// CountAdmins counts non-deleted administrators. Inside a transaction the
	// counted rows are locked so two concurrent demotions cannot both pass
	// the last-admin check.
	CountAdmins() (int64, error)
	CountSince(since time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	return &user, err
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	return &user, err
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) query(f UserFilter) *gorm.DB {
	q := r.db.Model(&domain.User{})
	if !f.IncludeDeleted {
		q = q.Where("status != ?", domain.StatusDeleted)
	}
	if f.Query != "" {
		q = q.Where("username LIKE ?", "%"+f.Query+"%")
	}
	return q
}

func (r *userRepository) Count(f UserFilter) (int64, error) {
	var total int64
	err := r.query(f).Count(&total).Error
	return total, err
}

func (r *userRepository) FindPage(f UserFilter, page, perPage int) ([]*domain.User, error) {
	var users []*domain.User
	offset := (page - 1) * perPage
	err := r.query(f).Order("id ASC").Offset(offset).Limit(perPage).Find(&users).Error
	return users, err
}

func (r *userRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("role = ? AND status != ?", domain.RoleAdmin, domain.StatusDeleted).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Where("status != ? AND created_at >= ?", domain.StatusDeleted, since).
		Count(&count).Error
	return count, err
}
