package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Moderation errors
	ErrSelfAction   = errors.New("action cannot target yourself")
	ErrLastAdmin    = errors.New("would leave no administrators")
	ErrThreadLocked = errors.New("thread is locked")

	// Versioning errors
	ErrConflict = errors.New("edit conflict, entity was modified concurrently")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrAccountSuspended   = errors.New("account is suspended")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
