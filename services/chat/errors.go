package chat

import (
	"errors"
	"fmt"
)

// ChatError is a typed failure surfaced by chat operations.
type ChatError struct {
	Code    string
	Message string
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeValidation   = "validationError"
	CodeUnauthorized = "unauthorized"
	CodeNotFound     = "notFound"
)

func NewValidationError(msg string) error {
	return &ChatError{Code: CodeValidation, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &ChatError{Code: CodeUnauthorized, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &ChatError{Code: CodeNotFound, Message: msg}
}

func is(err error, code string) bool {
	var ce *ChatError
	return errors.As(err, &ce) && ce.Code == code
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return is(err, CodeValidation) }

// IsUnauthorized reports whether err is an authorization error.
func IsUnauthorized(err error) bool { return is(err, CodeUnauthorized) }

// IsNotFound reports whether err is a notFound error.
func IsNotFound(err error) bool { return is(err, CodeNotFound) }
