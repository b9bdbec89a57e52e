package services

import (
	"errors"
)

// Common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Account errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("user profile not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
)

// Q&A errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// AI assist errors
var (
	ErrAIUnavailable = errors.New("AI model unavailable")
)

// ValidationError carries the message shown to the user. It matches
// ErrValidationFailed and, when set, the more specific Cause.
type ValidationError struct {
	Message string
	Cause   error
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidationFailed}
	}
	return []error{ErrValidationFailed, e.Cause}
}

// UserMessage returns the user-facing message for err when it is a
// ValidationError.
func UserMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
