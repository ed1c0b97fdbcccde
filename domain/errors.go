package domain

import (
	"errors"
)

type ErrorKind string

const (
	KindValidation            ErrorKind = "VALIDATION_ERROR"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindInvalidTransition     ErrorKind = "INVALID_TRANSITION"
	KindBloodGroupMismatch    ErrorKind = "BLOOD_GROUP_MISMATCH"
	KindAlreadyFulfilled      ErrorKind = "ALREADY_FULFILLED"
	KindAlreadyCancelled      ErrorKind = "ALREADY_CANCELLED"
	KindInsufficientInventory ErrorKind = "INSUFFICIENT_INVENTORY"
	KindUnauthorized          ErrorKind = "UNAUTHORIZED"
	KindForbidden             ErrorKind = "FORBIDDEN"
	KindInternal              ErrorKind = "INTERNAL"
)

// Error carries a kind the HTTP layer maps to a status code, and a message
// that is safe to show to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind and message so wrapped copies still compare
// equal to the sentinel they were made from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Wrap returns a copy of e that also carries cause.
func (e *Error) Wrap(cause error) error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

func ValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf reports the kind of err, or KindInternal for errors that did not
// originate in the domain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrUserNotAllowed = NewError(KindForbidden, "user not allowed")
	ErrTokenNotFound  = NewError(KindUnauthorized, "failed to token not found")
	ErrTokenExpired   = NewError(KindUnauthorized, "token expired")
	ErrTokenInvalid   = NewError(KindUnauthorized, "token invalid")
	ErrUnauthorized   = NewError(KindUnauthorized, "authentication required")
	ErrAdminOnly      = NewError(KindForbidden, "admin access required")
)
