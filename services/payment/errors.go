package payment

import (
	"errors"
	"fmt"
)

// ReconcileError is a typed failure surfaced by payment operations.
type ReconcileError struct {
	Code    string
	Message string
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeAlreadyPaid         = "alreadyPaid"
	CodePaymentNotCompleted = "paymentNotCompleted"
)

func NewAlreadyPaidError(msg string) error {
	return &ReconcileError{Code: CodeAlreadyPaid, Message: msg}
}

func NewPaymentNotCompletedError(msg string) error {
	return &ReconcileError{Code: CodePaymentNotCompleted, Message: msg}
}

// IsAlreadyPaid reports whether err is an alreadyPaid error.
func IsAlreadyPaid(err error) bool {
	var re *ReconcileError
	return errors.As(err, &re) && re.Code == CodeAlreadyPaid
}

// IsPaymentNotCompleted reports whether err is a paymentNotCompleted error.
func IsPaymentNotCompleted(err error) bool {
	var re *ReconcileError
	return errors.As(err, &re) && re.Code == CodePaymentNotCompleted
}
