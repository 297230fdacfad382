package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// Meta pagination metadata. Page is the page actually served, which may be
// lower than the requested one after clamping.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ErrorInfo error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success returns a successful JSON response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// SuccessWithMeta returns a successful JSON response with pagination metadata
func SuccessWithMeta(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: meta})
}

// Created returns a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// ErrorResponse returns an error JSON response with a status-derived code
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	ErrorWithCode(c, status, codeFromStatus(status), message, err)
}

// ErrorWithCode returns an error JSON response with an explicit reason code
func ErrorWithCode(c *gin.Context, status int, code, message string, err error) {
	info := &ErrorInfo{Code: code, Message: message}
	if err != nil {
		info.Details = err.Error()
	}
	c.JSON(status, APIResponse{Success: false, Error: info})
}

// RespondError maps a service error onto status and stable reason code.
// Every rejected mutation surfaces a stable, human-readable reason.
func RespondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrSelfAction):
		ErrorWithCode(c, http.StatusForbidden, "SELF_ACTION", err.Error(), nil)
	case errors.Is(err, ErrLastAdmin):
		ErrorWithCode(c, http.StatusForbidden, "LAST_ADMIN", err.Error(), nil)
	case errors.Is(err, ErrThreadLocked):
		ErrorWithCode(c, http.StatusForbidden, "THREAD_LOCKED", err.Error(), nil)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrAccountSuspended):
		ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, ErrConflict):
		ErrorWithCode(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, ErrUserAlreadyExists):
		ErrorWithCode(c, http.StatusConflict, "ALREADY_EXISTS", err.Error(), nil)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		ErrorWithCode(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		ErrorWithCode(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", fallback, err)
	}
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
