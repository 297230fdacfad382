package service

import (
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
	"github.com/talkbase/forum-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registration, login, and current-actor lookup
type AuthService interface {
	Register(req *domain.RegisterRequest) (*domain.User, error)
	Login(req *domain.LoginRequest) (*jwt.TokenPair, *domain.User, error)
	Refresh(refreshToken string) (*jwt.TokenPair, error)
	Me(actorID uint64) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{users: users, jwtManager: jwtManager}
}

func (s *authService) Register(req *domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.FindByUsername(req.Username); err == nil {
		return nil, common.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
		Status:   domain.StatusActive,
	}
	if err := s.users.Create(user); err != nil {
		if classifyDuplicate(err) == common.ErrConflict {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(req *domain.LoginRequest) (*jwt.TokenPair, *domain.User, error) {
	user, err := s.users.FindByUsername(req.Username)
	if err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}
	if user.IsDeleted() {
		return nil, nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}
	if user.IsBanned(time.Now()) {
		return nil, nil, common.ErrAccountSuspended
	}

	pair, err := s.jwtManager.GenerateTokenPair(user.ID, string(user.Role))
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *authService) Refresh(refreshToken string) (*jwt.TokenPair, error) {
	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	// Re-read the user so a ban or deletion since issuance sticks
	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if user.IsDeleted() {
		return nil, common.ErrInvalidToken
	}
	if user.IsBanned(time.Now()) {
		return nil, common.ErrAccountSuspended
	}
	return s.jwtManager.GenerateTokenPair(user.ID, string(user.Role))
}

func (s *authService) Me(actorID uint64) (*domain.User, error) {
	return s.users.FindByID(actorID)
}
