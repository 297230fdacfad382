package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
)

func activeUser(id uint64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleUser, Status: domain.StatusActive}
}

func activeAdmin(id uint64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleAdmin, Status: domain.StatusActive}
}

func TestCanModerate(t *testing.T) {
	author := activeUser(1)
	other := activeUser(2)
	admin := activeAdmin(3)

	assert.NoError(t, CanModerate(author, 1))
	assert.NoError(t, CanModerate(admin, 1))
	assert.ErrorIs(t, CanModerate(other, 1), common.ErrForbidden)
}

func TestCanWrite(t *testing.T) {
	now := time.Now()

	t.Run("active user", func(t *testing.T) {
		assert.NoError(t, CanWrite(activeUser(1), now))
	})

	t.Run("deleted user", func(t *testing.T) {
		u := activeUser(1)
		u.Status = domain.StatusDeleted
		assert.ErrorIs(t, CanWrite(u, now), common.ErrForbidden)
	})

	t.Run("permanently banned", func(t *testing.T) {
		u := activeUser(1)
		u.Status = domain.StatusBanned
		assert.ErrorIs(t, CanWrite(u, now), common.ErrForbidden)
	})

	t.Run("ban still in effect", func(t *testing.T) {
		u := activeUser(1)
		u.Status = domain.StatusBanned
		until := now.Add(time.Hour)
		u.BannedUntil = &until
		assert.ErrorIs(t, CanWrite(u, now), common.ErrForbidden)
	})

	t.Run("lapsed ban", func(t *testing.T) {
		u := activeUser(1)
		u.Status = domain.StatusBanned
		until := now.Add(-time.Hour)
		u.BannedUntil = &until
		assert.NoError(t, CanWrite(u, now))
	})
}

func TestCanPostReply(t *testing.T) {
	now := time.Now()
	open := &domain.Thread{ID: 1, IsLocked: false}
	locked := &domain.Thread{ID: 2, IsLocked: true}

	t.Run("open thread", func(t *testing.T) {
		assert.NoError(t, CanPostReply(activeUser(1), open, now))
	})

	t.Run("locked thread blocks everyone", func(t *testing.T) {
		assert.ErrorIs(t, CanPostReply(activeUser(1), locked, now), common.ErrThreadLocked)
		assert.ErrorIs(t, CanPostReply(activeAdmin(2), locked, now), common.ErrThreadLocked)
	})

	t.Run("banned user fails before the lock check", func(t *testing.T) {
		u := activeUser(1)
		u.Status = domain.StatusBanned
		assert.ErrorIs(t, CanPostReply(u, locked, now), common.ErrForbidden)
	})
}

func TestCanChangeRole(t *testing.T) {
	t.Run("non-admin actor", func(t *testing.T) {
		err := CanChangeRole(activeUser(1), activeUser(2), domain.RoleAdmin, 1)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("promote user", func(t *testing.T) {
		err := CanChangeRole(activeAdmin(1), activeUser(2), domain.RoleAdmin, 1)
		assert.NoError(t, err)
	})

	t.Run("demote sole admin", func(t *testing.T) {
		admin := activeAdmin(1)
		err := CanChangeRole(admin, admin, domain.RoleUser, 1)
		assert.ErrorIs(t, err, common.ErrLastAdmin)
	})

	t.Run("demote admin when another remains", func(t *testing.T) {
		err := CanChangeRole(activeAdmin(1), activeAdmin(2), domain.RoleUser, 2)
		assert.NoError(t, err)
	})

	t.Run("self demotion allowed when not last", func(t *testing.T) {
		admin := activeAdmin(1)
		err := CanChangeRole(admin, admin, domain.RoleUser, 2)
		assert.NoError(t, err)
	})

	t.Run("deleted target", func(t *testing.T) {
		target := activeUser(2)
		target.Status = domain.StatusDeleted
		err := CanChangeRole(activeAdmin(1), target, domain.RoleAdmin, 1)
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})
}

func TestCanBan(t *testing.T) {
	admin := activeAdmin(1)

	t.Run("admin bans user", func(t *testing.T) {
		assert.NoError(t, CanBan(admin, activeUser(2)))
	})

	t.Run("admin bans another admin", func(t *testing.T) {
		assert.NoError(t, CanBan(admin, activeAdmin(2)))
	})

	t.Run("self ban", func(t *testing.T) {
		assert.ErrorIs(t, CanBan(admin, admin), common.ErrSelfAction)
	})

	t.Run("non-admin actor", func(t *testing.T) {
		assert.ErrorIs(t, CanBan(activeUser(1), activeUser(2)), common.ErrForbidden)
	})

	t.Run("deleted target", func(t *testing.T) {
		target := activeUser(2)
		target.Status = domain.StatusDeleted
		assert.ErrorIs(t, CanBan(admin, target), common.ErrUserNotFound)
	})
}

func TestCanUnban(t *testing.T) {
	admin := activeAdmin(1)
	banned := activeUser(2)
	banned.Status = domain.StatusBanned

	assert.NoError(t, CanUnban(admin, banned))
	assert.ErrorIs(t, CanUnban(activeUser(3), banned), common.ErrForbidden)
}

func TestCanDeleteUser(t *testing.T) {
	admin := activeAdmin(1)

	t.Run("delete regular user", func(t *testing.T) {
		assert.NoError(t, CanDeleteUser(admin, activeUser(2), 1))
	})

	t.Run("self delete", func(t *testing.T) {
		assert.ErrorIs(t, CanDeleteUser(admin, admin, 2), common.ErrSelfAction)
	})

	t.Run("delete last admin", func(t *testing.T) {
		assert.ErrorIs(t, CanDeleteUser(admin, activeAdmin(2), 1), common.ErrLastAdmin)
	})

	t.Run("delete admin when another remains", func(t *testing.T) {
		assert.NoError(t, CanDeleteUser(admin, activeAdmin(2), 2))
	})

	t.Run("non-admin actor", func(t *testing.T) {
		assert.ErrorIs(t, CanDeleteUser(activeUser(1), activeUser(2), 1), common.ErrForbidden)
	})

	t.Run("already deleted target", func(t *testing.T) {
		target := activeUser(2)
		target.Status = domain.StatusDeleted
		assert.ErrorIs(t, CanDeleteUser(admin, target, 1), common.ErrUserNotFound)
	})
}
