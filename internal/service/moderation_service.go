package service

import (
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
	"gorm.io/gorm"
)

// ModerationService admin mutations on users. Aggregate-dependent checks
// (last admin) are taken inside the same transaction as the mutation they
// gate, with the counted rows locked, so concurrent demotions cannot race
// past each other.
type ModerationService interface {
	SetRole(actorID, targetID uint64, role domain.UserRole) (*domain.User, error)
	Ban(actorID, targetID uint64, reason string, until *time.Time) (*domain.User, error)
	Unban(actorID, targetID uint64) (*domain.User, error)
	DeleteUser(actorID, targetID uint64) error
	ListUsers(req common.PageRequest, f repository.UserFilter) (*common.PageResult[*domain.User], error)
	Stats() (*DashboardStats, error)
}

// DashboardStats admin dashboard counters
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalThreads  int64 `json:"total_threads"`
	TotalPosts    int64 `json:"total_posts"`
	RecentUsers   int64 `json:"recent_users"`
	RecentThreads int64 `json:"recent_threads"`
	RecentPosts   int64 `json:"recent_posts"`
}

type moderationService struct {
	tx      repository.TxManager
	users   repository.UserRepository
	threads repository.ThreadRepository
	posts   repository.PostRepository
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	tx repository.TxManager,
	users repository.UserRepository,
	threads repository.ThreadRepository,
	posts repository.PostRepository,
) ModerationService {
	return &moderationService{tx: tx, users: users, threads: threads, posts: posts}
}

func (s *moderationService) SetRole(actorID, targetID uint64, role domain.UserRole) (*domain.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	var updated *domain.User
	err = s.tx.Do(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		target, err := users.FindByID(targetID)
		if err != nil {
			return err
		}
		adminCount, err := users.CountAdmins()
		if err != nil {
			return err
		}
		if err := CanChangeRole(actor, target, role, adminCount); err != nil {
			return err
		}

		target.Role = role
		if err := users.Update(target); err != nil {
			return err
		}
		updated = target
		return nil
	})
	return updated, err
}

func (s *moderationService) Ban(actorID, targetID uint64, reason string, until *time.Time) (*domain.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	var updated *domain.User
	err = s.tx.Do(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		target, err := users.FindByID(targetID)
		if err != nil {
			return err
		}
		if err := CanBan(actor, target); err != nil {
			return err
		}

		target.Status = domain.StatusBanned
		if reason != "" {
			target.BanReason = &reason
		}
		target.BannedUntil = until
		target.BannedBy = &actor.ID
		if err := users.Update(target); err != nil {
			return err
		}
		updated = target
		return nil
	})
	return updated, err
}

func (s *moderationService) Unban(actorID, targetID uint64) (*domain.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	var updated *domain.User
	err = s.tx.Do(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		target, err := users.FindByID(targetID)
		if err != nil {
			return err
		}
		if err := CanUnban(actor, target); err != nil {
			return err
		}

		target.Status = domain.StatusActive
		target.BanReason = nil
		target.BannedUntil = nil
		target.BannedBy = nil
		if err := users.Update(target); err != nil {
			return err
		}
		updated = target
		return nil
	})
	return updated, err
}

// DeleteUser soft-deletes the account; content stays attributed.
func (s *moderationService) DeleteUser(actorID, targetID uint64) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return common.ErrUnauthorized
	}

	return s.tx.Do(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		target, err := users.FindByID(targetID)
		if err != nil {
			return err
		}
		adminCount, err := users.CountAdmins()
		if err != nil {
			return err
		}
		if err := CanDeleteUser(actor, target, adminCount); err != nil {
			return err
		}

		target.Status = domain.StatusDeleted
		target.BanReason = nil
		target.BannedUntil = nil
		target.BannedBy = nil
		return users.Update(target)
	})
}

func (s *moderationService) ListUsers(req common.PageRequest, f repository.UserFilter) (*common.PageResult[*domain.User], error) {
	return common.Paginate(req,
		func() (int64, error) { return s.users.Count(f) },
		func(page, perPage int) ([]*domain.User, error) { return s.users.FindPage(f, page, perPage) },
	)
}

func (s *moderationService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(repository.UserFilter{}); err != nil {
		return nil, err
	}
	if stats.TotalThreads, err = s.threads.Count(repository.ThreadFilter{}); err != nil {
		return nil, err
	}
	if stats.TotalPosts, err = s.posts.Count(repository.PostFilter{}); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)
	if stats.RecentUsers, err = s.users.CountSince(since); err != nil {
		return nil, err
	}
	if stats.RecentThreads, err = s.threads.CountSince(since); err != nil {
		return nil, err
	}
	if stats.RecentPosts, err = s.posts.CountSince(since); err != nil {
		return nil, err
	}
	return stats, nil
}
