package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 30*time.Minute, 7*24*time.Hour)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthServiceRegister(t *testing.T) {
	t.Run("new user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		users.On("FindByUsername", "alice").Return(nil, common.ErrUserNotFound)
		users.On("Create", mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.Register(&domain.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, domain.StatusActive, user.Status)
		assert.NotEqual(t, "password123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		users.On("FindByUsername", "alice").Return(activeUser(1), nil)

		_, err := svc.Register(&domain.RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "password123",
		})

		assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
		users.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		u := activeUser(1)
		u.Username = "alice"
		u.Password = hashPassword(t, "password123")
		users.On("FindByUsername", "alice").Return(u, nil)

		pair, user, err := svc.Login(&domain.LoginRequest{Username: "alice", Password: "password123"})

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, uint64(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		u := activeUser(1)
		u.Password = hashPassword(t, "password123")
		users.On("FindByUsername", "alice").Return(u, nil)

		_, _, err := svc.Login(&domain.LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		users.On("FindByUsername", "ghost").Return(nil, common.ErrUserNotFound)

		_, _, err := svc.Login(&domain.LoginRequest{Username: "ghost", Password: "password123"})
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("deleted account reads as bad credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		u := activeUser(1)
		u.Status = domain.StatusDeleted
		u.Password = hashPassword(t, "password123")
		users.On("FindByUsername", "alice").Return(u, nil)

		_, _, err := svc.Login(&domain.LoginRequest{Username: "alice", Password: "password123"})
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("banned account is suspended", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		u := activeUser(1)
		u.Status = domain.StatusBanned
		u.Password = hashPassword(t, "password123")
		users.On("FindByUsername", "alice").Return(u, nil)

		_, _, err := svc.Login(&domain.LoginRequest{Username: "alice", Password: "password123"})
		assert.ErrorIs(t, err, common.ErrAccountSuspended)
	})

	t.Run("lapsed ban logs in", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testJWTManager())

		u := activeUser(1)
		u.Status = domain.StatusBanned
		until := time.Now().Add(-time.Hour)
		u.BannedUntil = &until
		u.Password = hashPassword(t, "password123")
		users.On("FindByUsername", "alice").Return(u, nil)

		_, _, err := svc.Login(&domain.LoginRequest{Username: "alice", Password: "password123"})
		assert.NoError(t, err)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	manager := testJWTManager()

	t.Run("valid refresh", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, manager)

		pair, err := manager.GenerateTokenPair(1, "user")
		assert.NoError(t, err)
		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)

		refreshed, err := svc.Refresh(pair.RefreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), manager)

		_, err := svc.Refresh("not-a-token")
		assert.ErrorIs(t, err, common.ErrInvalidToken)
	})

	t.Run("ban since issuance sticks", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, manager)

		pair, err := manager.GenerateTokenPair(1, "user")
		assert.NoError(t, err)

		banned := activeUser(1)
		banned.Status = domain.StatusBanned
		users.On("FindByID", uint64(1)).Return(banned, nil)

		_, err = svc.Refresh(pair.RefreshToken)
		assert.ErrorIs(t, err, common.ErrAccountSuspended)
	})

	t.Run("deletion since issuance sticks", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, manager)

		pair, err := manager.GenerateTokenPair(1, "user")
		assert.NoError(t, err)

		deleted := activeUser(1)
		deleted.Status = domain.StatusDeleted
		users.On("FindByID", uint64(1)).Return(deleted, nil)

		_, err = svc.Refresh(pair.RefreshToken)
		assert.ErrorIs(t, err, common.ErrInvalidToken)
	})
}
