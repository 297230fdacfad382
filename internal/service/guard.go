package service

import (
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
)

// Moderation guard: pure authorization predicates consulted before any
// mutating operation touches the store. Each returns nil or one of the
// tagged errors from common; callers surface the reason verbatim.
//
// Aggregate-dependent checks (last admin) take the count as an argument and
// must be fed a count taken inside the same transaction as the mutation.

// CanModerate allows the content author and admins
func CanModerate(actor *domain.User, authorID uint64) error {
	if actor.ID == authorID || actor.IsAdmin() {
		return nil
	}
	return common.ErrForbidden
}

// CanWrite blocks banned and deleted accounts from creating content
func CanWrite(actor *domain.User, now time.Time) error {
	if actor.IsDeleted() || actor.IsBanned(now) {
		return common.ErrForbidden
	}
	return nil
}

// CanPostReply gates reply creation. The lock is a write barrier on new
// replies only; editing or deleting the thread and its posts stays governed
// by CanModerate.
func CanPostReply(actor *domain.User, thread *domain.Thread, now time.Time) error {
	if err := CanWrite(actor, now); err != nil {
		return err
	}
	if thread.IsLocked {
		return common.ErrThreadLocked
	}
	return nil
}

// CanChangeRole allows admins to change roles, except demoting the sole
// remaining admin. adminCount is the number of non-deleted admins at
// decision time.
func CanChangeRole(actor, target *domain.User, newRole domain.UserRole, adminCount int64) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if target.IsDeleted() {
		return common.ErrUserNotFound
	}
	if newRole != domain.RoleAdmin && target.IsAdmin() && adminCount <= 1 {
		return common.ErrLastAdmin
	}
	return nil
}

// CanBan allows admins to ban anyone but themselves
func CanBan(actor, target *domain.User) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if actor.ID == target.ID {
		return common.ErrSelfAction
	}
	if target.IsDeleted() {
		return common.ErrUserNotFound
	}
	return nil
}

// CanUnban is admin-only with no self-restriction
func CanUnban(actor, target *domain.User) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if target.IsDeleted() {
		return common.ErrUserNotFound
	}
	return nil
}

// CanDeleteUser allows admins to delete any other user unless that would
// leave zero admins
func CanDeleteUser(actor, target *domain.User, adminCount int64) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if actor.ID == target.ID {
		return common.ErrSelfAction
	}
	if target.IsDeleted() {
		return common.ErrUserNotFound
	}
	if target.IsAdmin() && adminCount <= 1 {
		return common.ErrLastAdmin
	}
	return nil
}
