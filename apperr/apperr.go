// Package apperr carries the machine-readable error kinds shared by the
// resolver, theme and template-sync layers. Resolution errors collapse into a
// redirect at the edge; mutation errors are rendered with their kind so the
// dashboard can react per field.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindTransient  Kind = "transient"
)

type Error struct {
	Kind    Kind
	Message string
	// Key names the offending input field when there is one.
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Validation(message string) *Error { return New(KindValidation, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }

func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// KindOf reports the kind of err, or KindTransient for anything untyped.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindTransient
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
