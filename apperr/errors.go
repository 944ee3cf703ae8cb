// Package apperr classifies request failures so the HTTP boundary can map
// them to status codes without inspecting messages. Dependency failures wrap
// their cause and stay distinguishable from programming errors.
package apperr

import "errors"

// Kind identifies the failure class of an Error.
type Kind int

const (
	KindValidation Kind = iota // missing or invalid input
	KindConflict               // duplicate unique key
	KindAuth                   // credential mismatch
	KindNotFound               // missing entity
	KindDependency             // persistence or gateway failure
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or invalid input.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Conflict reports a duplicate unique key.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Auth reports a credential mismatch.
func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

// NotFound reports a missing entity.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Dependency reports a failed call to the persistence layer or an external
// collaborator, keeping the cause for diagnostics.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
