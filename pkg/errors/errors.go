package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
	CodePolicyViolation    = "POLICY_VIOLATION"
	CodeUploadFailed       = "UPLOAD_FAILED"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeCommitFailed       = "COMMIT_FAILED"
	CodeSubscriptionFailed = "SUBSCRIPTION_FAILED"
	CodeRateLimited        = "RATE_LIMITED"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// PolicyViolation rejects content before any network effect, e.g. a blocked
// attachment extension.
func PolicyViolation(message string) *AppError {
	return &AppError{
		Code:    CodePolicyViolation,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     nil,
	}
}

func UploadFailed(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUploadFailed,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func PermissionDenied(message string, err error) *AppError {
	return &AppError{
		Code:    CodePermissionDenied,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func CommitFailed(message string, err error) *AppError {
	return &AppError{
		Code:    CodeCommitFailed,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func SubscriptionFailed(message string, err error) *AppError {
	return &AppError{
		Code:    CodeSubscriptionFailed,
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

func RateLimited(message string) *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsValidation reports whether err was raised before any I/O was attempted.
func IsValidation(err error) bool {
	return Is(err, CodeBadRequest) || Is(err, CodePolicyViolation)
}
