package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
	ErrInvalidToken   = errors.New("invalid token")
)

// Error carries the failure kind plus the field and message a caller can show.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Kind.Error(), e.Message, e.Field)
	}

	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
	}

	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NewAuthenticationError always carries the same message so callers cannot
// tell an unknown username from a wrong password.
func NewAuthenticationError() *Error {
	return &Error{Kind: ErrAuthentication, Message: "invalid credentials"}
}

func NewTokenError(reason error) *Error {
	return &Error{Kind: ErrInvalidToken, Message: reason.Error()}
}

func IsValidation(err error) bool     { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool       { return errors.Is(err, ErrConflict) }
func IsAuthentication(err error) bool { return errors.Is(err, ErrAuthentication) }
func IsNotFound(err error) bool       { return errors.Is(err, ErrNotFound) }
func IsInvalidToken(err error) bool   { return errors.Is(err, ErrInvalidToken) }

// FieldOf returns the offending field of a domain error, if any.
func FieldOf(err error) string {
	var derr *Error

	if errors.As(err, &derr) {
		return derr.Field
	}

	return ""
}
