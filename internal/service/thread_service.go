package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
	"github.com/talkbase/forum-backend/pkg/cache"
	"github.com/talkbase/forum-backend/pkg/logger"
	"gorm.io/gorm"
)

// ThreadService business logic for threads, including the versioned edit
// protocol: load, authorize, snapshot the pre-edit state, apply, bump
// current_version — all inside one transaction with an optimistic version
// check.
type ThreadService interface {
	Create(actorID uint64, req *domain.CreateThreadRequest) (*domain.Thread, error)
	Get(id uint64) (*domain.Thread, error)
	List(req common.PageRequest, f repository.ThreadFilter) (*common.PageResult[*domain.Thread], error)
	Edit(id, actorID uint64, req *domain.UpdateThreadRequest) (*domain.Thread, error)
	Delete(id, actorID uint64) error
	SetLocked(id, actorID uint64, locked bool) error
	ListHistory(id uint64) ([]*domain.Revision, error)
	GetVersion(id uint64, version uint) (*domain.Revision, error)
}

type threadService struct {
	tx        repository.TxManager
	threads   repository.ThreadRepository
	posts     repository.PostRepository
	revisions repository.RevisionRepository
	users     repository.UserRepository
	cache     cache.Service
}

// NewThreadService creates a new ThreadService
func NewThreadService(
	tx repository.TxManager,
	threads repository.ThreadRepository,
	posts repository.PostRepository,
	revisions repository.RevisionRepository,
	users repository.UserRepository,
	cacheSvc cache.Service,
) ThreadService {
	return &threadService{
		tx:        tx,
		threads:   threads,
		posts:     posts,
		revisions: revisions,
		users:     users,
		cache:     cacheSvc,
	}
}

// classifyDuplicate maps a MySQL duplicate-entry error on the
// (entity_type, entity_id, version) index to an edit conflict: a concurrent
// editor already snapshotted this version.
func classifyDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return common.ErrConflict
	}
	return err
}

func (s *threadService) Create(actorID uint64, req *domain.CreateThreadRequest) (*domain.Thread, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	if err := CanWrite(actor, time.Now()); err != nil {
		return nil, err
	}

	thread := &domain.Thread{
		AuthorID:       actor.ID,
		Title:          req.Title,
		Content:        req.Content,
		CurrentVersion: 1,
	}
	if err := s.threads.Create(thread, req.CategoryIDs); err != nil {
		return nil, err
	}
	s.invalidateLists()
	return s.threads.FindByID(thread.ID)
}

func (s *threadService) Get(id uint64) (*domain.Thread, error) {
	ctx := context.Background()
	if s.cache != nil {
		var cached domain.Thread
		if err := s.cache.Get(ctx, cache.ThreadKey(id), &cached); err == nil {
			go s.threads.IncrementViewCount(id) //nolint:errcheck
			return &cached, nil
		}
	}

	thread, err := s.threads.FindByID(id)
	if err != nil {
		return nil, err
	}

	// View count is best effort, off the request path
	go s.threads.IncrementViewCount(id) //nolint:errcheck

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ThreadKey(id), thread, cache.TTLThread); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("thread cache set failed")
		}
	}
	return thread, nil
}

func (s *threadService) List(req common.PageRequest, f repository.ThreadFilter) (*common.PageResult[*domain.Thread], error) {
	// Only the unfiltered listing is cached; filtered views go to the store.
	unfiltered := f.Query == "" && len(f.CategoryIDs) == 0 && f.AuthorID == 0 && f.CreatedAfter.IsZero()
	ctx := context.Background()
	norm := req.Normalize()

	if s.cache != nil && unfiltered {
		var cached common.PageResult[*domain.Thread]
		if err := s.cache.Get(ctx, cache.ThreadListKey(norm.Page, norm.PerPage), &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := common.Paginate(req,
		func() (int64, error) { return s.threads.Count(f) },
		func(page, perPage int) ([]*domain.Thread, error) { return s.threads.FindPage(f, page, perPage) },
	)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && unfiltered {
		// Keyed by the requested page, so a clamped response is found again
		// by clients asking for the same out-of-range page.
		if err := s.cache.Set(ctx, cache.ThreadListKey(norm.Page, norm.PerPage), result, cache.TTLThreadList); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("thread list cache set failed")
		}
	}
	return result, nil
}

func (s *threadService) Edit(id, actorID uint64, req *domain.UpdateThreadRequest) (*domain.Thread, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	var updated *domain.Thread
	err = s.tx.Do(func(tx *gorm.DB) error {
		threads := s.threads.WithTx(tx)

		thread, err := threads.FindByID(id)
		if err != nil {
			return err
		}
		if err := CanModerate(actor, thread.AuthorID); err != nil {
			return err
		}

		// Snapshot the pre-edit state under the version it supersedes. The
		// unique index turns a concurrent snapshot of the same version into
		// a duplicate-entry error.
		rev := &domain.Revision{
			EntityType: domain.EntityThread,
			EntityID:   thread.ID,
			Version:    thread.CurrentVersion,
			Title:      thread.Title,
			Content:    thread.Content,
			EditedBy:   actor.ID,
		}
		if err := s.revisions.WithTx(tx).Create(rev); err != nil {
			return classifyDuplicate(err)
		}

		fromVersion := thread.CurrentVersion
		if req.Title != nil {
			thread.Title = *req.Title
		}
		if req.Content != nil {
			thread.Content = *req.Content
		}
		thread.CurrentVersion = fromVersion + 1

		affected, err := threads.UpdateVersioned(thread, fromVersion)
		if err != nil {
			return err
		}
		if affected == 0 {
			return common.ErrConflict
		}

		if req.CategoryIDs != nil {
			if err := threads.ReplaceCategories(thread, req.CategoryIDs); err != nil {
				return err
			}
		}
		updated = thread
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(id)
	return updated, nil
}

// Delete removes the thread, its posts, and every revision of both, as one
// all-or-nothing unit.
func (s *threadService) Delete(id, actorID uint64) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return common.ErrUnauthorized
	}

	err = s.tx.Do(func(tx *gorm.DB) error {
		threads := s.threads.WithTx(tx)
		posts := s.posts.WithTx(tx)
		revisions := s.revisions.WithTx(tx)

		thread, err := threads.FindByID(id)
		if err != nil {
			return err
		}
		if err := CanModerate(actor, thread.AuthorID); err != nil {
			return err
		}

		postIDs, err := posts.FindIDsByThread(id)
		if err != nil {
			return err
		}
		if err := revisions.DeleteByEntities(domain.EntityPost, postIDs); err != nil {
			return err
		}
		if err := posts.DeleteByThread(id); err != nil {
			return err
		}
		if err := revisions.DeleteByEntity(domain.EntityThread, id); err != nil {
			return err
		}
		return threads.Delete(id)
	})
	if err != nil {
		return err
	}

	s.invalidate(id)
	return nil
}

func (s *threadService) SetLocked(id, actorID uint64, locked bool) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return common.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if err := s.threads.SetLocked(id, locked); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *threadService) ListHistory(id uint64) ([]*domain.Revision, error) {
	if _, err := s.threads.FindByID(id); err != nil {
		return nil, err
	}
	return s.revisions.FindByEntity(domain.EntityThread, id)
}

// GetVersion returns a single historical snapshot. The live entity is not in
// the revision store, so requesting the current version yields NotFound.
func (s *threadService) GetVersion(id uint64, version uint) (*domain.Revision, error) {
	if _, err := s.threads.FindByID(id); err != nil {
		return nil, err
	}
	return s.revisions.FindByEntityAndVersion(domain.EntityThread, id, version)
}

func (s *threadService) invalidate(id uint64) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	if err := s.cache.InvalidateThread(ctx, id); err != nil {
		logger.GetLogger().Warn().Err(err).Uint64("thread_id", id).Msg("cache invalidation failed")
	}
	s.invalidateLists()
}

func (s *threadService) invalidateLists() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateThreadLists(context.Background()); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("thread list cache invalidation failed")
	}
}
