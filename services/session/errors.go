package session

import (
	"errors"
	"fmt"
)

// LifecycleError is a typed failure surfaced by session lifecycle operations.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeNotFound     = "notFound"
	CodeInvalidState = "invalidState"
)

func NewNotFoundError(msg string) error {
	return &LifecycleError{Code: CodeNotFound, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &LifecycleError{Code: CodeInvalidState, Message: msg}
}

// IsNotFound reports whether err is a notFound lifecycle error.
func IsNotFound(err error) bool {
	var le *LifecycleError
	return errors.As(err, &le) && le.Code == CodeNotFound
}

// IsInvalidState reports whether err is an invalidState lifecycle error.
func IsInvalidState(err error) bool {
	var le *LifecycleError
	return errors.As(err, &le) && le.Code == CodeInvalidState
}
