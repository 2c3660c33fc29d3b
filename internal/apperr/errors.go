// Package apperr provides the error taxonomy shared by the lexicon, the
// request handlers and the shared-state gateways.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure. It decides whether a caller is told
// about the failure or the request is dropped.
type Kind string

const (
	// KindMalformedEntry marks a lexicon line that cannot be parsed. Fatal at startup.
	KindMalformedEntry Kind = "malformed_entry"
	// KindBadRequest marks a request body of the wrong shape. Signalled to the caller.
	KindBadRequest Kind = "bad_request"
	// KindNotFound marks a missing document or field in shared state.
	KindNotFound Kind = "not_found"
	// KindDecode marks a stored payload that does not match the expected schema.
	KindDecode Kind = "decode_error"
	// KindStore marks a shared-state read or write that could not be confirmed.
	KindStore Kind = "store_error"
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown Kind = "unknown"
)

// Error is a categorised error with optional cause and context fields.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair and returns the same error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func MalformedEntry(message string, cause error) *Error {
	return newError(KindMalformedEntry, message, cause)
}

func BadRequest(message string, cause error) *Error {
	return newError(KindBadRequest, message, cause)
}

func NotFound(message string) *Error {
	return newError(KindNotFound, message, nil)
}

func Decode(message string, cause error) *Error {
	return newError(KindDecode, message, cause)
}

func Store(message string, cause error) *Error {
	return newError(KindStore, message, cause)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err's chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
