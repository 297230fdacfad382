package service

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
	"gorm.io/gorm"
)

// fakeTxManager runs the transaction body directly; the mocks below return
// themselves from WithTx so expectations apply inside the transaction too.
type fakeTxManager struct{}

func (fakeTxManager) Do(fn func(tx *gorm.DB) error) error { return fn(nil) }

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) WithTx(tx *gorm.DB) repository.UserRepository { return m }

func (m *MockUserRepository) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(f repository.UserFilter) (int64, error) {
	args := m.Called(f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindPage(f repository.UserFilter, page, perPage int) ([]*domain.User, error) {
	args := m.Called(f, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountAdmins() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockThreadRepository is a mock implementation of ThreadRepository
type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) WithTx(tx *gorm.DB) repository.ThreadRepository { return m }

func (m *MockThreadRepository) FindByID(id uint64) (*domain.Thread, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Thread), args.Error(1)
}

func (m *MockThreadRepository) Create(thread *domain.Thread, categoryIDs []uint64) error {
	args := m.Called(thread, categoryIDs)
	return args.Error(0)
}

func (m *MockThreadRepository) UpdateVersioned(thread *domain.Thread, fromVersion uint) (int64, error) {
	args := m.Called(thread, fromVersion)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThreadRepository) ReplaceCategories(thread *domain.Thread, categoryIDs []uint64) error {
	args := m.Called(thread, categoryIDs)
	return args.Error(0)
}

func (m *MockThreadRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockThreadRepository) SetLocked(id uint64, locked bool) error {
	args := m.Called(id, locked)
	return args.Error(0)
}

func (m *MockThreadRepository) IncrementViewCount(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockThreadRepository) Count(f repository.ThreadFilter) (int64, error) {
	args := m.Called(f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThreadRepository) FindPage(f repository.ThreadFilter, page, perPage int) ([]*domain.Thread, error) {
	args := m.Called(f, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Thread), args.Error(1)
}

func (m *MockThreadRepository) CountSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) WithTx(tx *gorm.DB) repository.PostRepository { return m }

func (m *MockPostRepository) FindByID(id uint64) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) Create(post *domain.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateVersioned(post *domain.Post, fromVersion uint) (int64, error) {
	args := m.Called(post, fromVersion)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) FindIDsByThread(threadID uint64) ([]uint64, error) {
	args := m.Called(threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockPostRepository) DeleteByThread(threadID uint64) error {
	args := m.Called(threadID)
	return args.Error(0)
}

func (m *MockPostRepository) Count(f repository.PostFilter) (int64, error) {
	args := m.Called(f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) FindPage(f repository.PostFilter, page, perPage int) ([]*domain.Post, error) {
	args := m.Called(f, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}

func (m *MockPostRepository) CountSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockRevisionRepository is a mock implementation of RevisionRepository
type MockRevisionRepository struct {
	mock.Mock
}

func (m *MockRevisionRepository) WithTx(tx *gorm.DB) repository.RevisionRepository { return m }

func (m *MockRevisionRepository) Create(rev *domain.Revision) error {
	args := m.Called(rev)
	return args.Error(0)
}

func (m *MockRevisionRepository) FindByEntity(entityType domain.EntityType, entityID uint64) ([]*domain.Revision, error) {
	args := m.Called(entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Revision), args.Error(1)
}

func (m *MockRevisionRepository) FindByEntityAndVersion(entityType domain.EntityType, entityID uint64, version uint) (*domain.Revision, error) {
	args := m.Called(entityType, entityID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Revision), args.Error(1)
}

func (m *MockRevisionRepository) DeleteByEntity(entityType domain.EntityType, entityID uint64) error {
	args := m.Called(entityType, entityID)
	return args.Error(0)
}

func (m *MockRevisionRepository) DeleteByEntities(entityType domain.EntityType, entityIDs []uint64) error {
	args := m.Called(entityType, entityIDs)
	return args.Error(0)
}
