package httperr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a rejection so callers can branch on cause.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindInsufficientStock Kind = "insufficient_stock"
	KindUnavailable       Kind = "unavailable"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func WithDetails(kind Kind, code, message string, details map[string]any) error {
	return BusinessError{Kind: kind, Code: code, Message: message, Details: details}
}

func Validation(code, message string) error {
	return New(KindValidation, code, message)
}

func NotFoundErr(code, message string) error {
	return New(KindNotFound, code, message)
}

func UnauthorizedErr(code, message string) error {
	return New(KindUnauthorized, code, message)
}

func Conflict(code, message string) error {
	return New(KindConflict, code, message)
}

func InvalidTransition(code, message string) error {
	return New(KindInvalidTransition, code, message)
}

// Unavailable wraps a storage or connectivity failure. It is the only kind
// a caller may retry.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	code := "storage_unavailable"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = "request_aborted"
	}
	return BusinessError{
		Kind:    KindUnavailable,
		Code:    code,
		Message: "Service temporarily unavailable.",
		Err:     err,
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf reports the kind of err. Errors that did not come through this
// package are treated as unavailable.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnavailable
}

func Retryable(err error) bool {
	return err != nil && KindOf(err) == KindUnavailable
}
