// Package result carries operation outcomes by value instead of panics.
// Every public operation in the request-processing core returns a Result;
// the failure branch holds a classified Error from the closed taxonomy.
package result

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an expected failure mode.
type Kind string

const (
	// KindValidation means caller-supplied data violated declared constraints.
	// Messages are actionable (field + reason) and safe to show to end users.
	KindValidation Kind = "validation"
	// KindNotFound means the targeted entity does not exist. Terminal.
	KindNotFound Kind = "not_found"
	// KindTransientStorage means the storage client reported a
	// connectivity/timeout-class failure. Retryable above the handler.
	KindTransientStorage Kind = "transient_storage"
	// KindUnexpected covers everything else. Logged with the correlation id,
	// surfaced to callers without internal detail.
	KindUnexpected Kind = "unexpected"
)

// Error is the failure branch of a Result.
type Error struct {
	Kind    Kind
	Message string
	// Details carries one entry per violated constraint for validation
	// failures; empty otherwise.
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validation builds a validation error with one detail per violation.
func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// NotFound builds a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// TransientStorage builds a retryable storage error.
func TransientStorage(message string) *Error {
	return &Error{Kind: KindTransientStorage, Message: message}
}

// Unexpected builds an unclassified error.
func Unexpected(message string) *Error {
	return &Error{Kind: KindUnexpected, Message: message}
}

// KindOf reports the taxonomy kind of err, or KindUnexpected when err does
// not wrap a taxonomy Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// Result is a success/failure container. Exactly one branch is populated.
type Result[T any] struct {
	value T
	err   *Error
}

// OK returns a successful result holding value.
func OK[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail returns a failed result. A nil err is treated as a defect and
// replaced with an Unexpected error so the failure branch is never empty.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = Unexpected("failure with nil error")
	}
	return Result[T]{err: err}
}

// IsOK reports whether the result holds a value.
func (r Result[T]) IsOK() bool { return r.err == nil }

// Value returns the success value; the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure branch, nil on success.
func (r Result[T]) Err() *Error { return r.err }

// Unpack returns both branches for callers that prefer Go's (v, err) shape.
func (r Result[T]) Unpack() (T, *Error) { return r.value, r.err }

// Convert re-wraps a failed Result into a different value type, preserving
// the error unchanged in kind. Calling it on a successful result is a
// programming defect and yields an Unexpected failure.
func Convert[T, U any](r Result[U]) Result[T] {
	if r.err == nil {
		return Fail[T](Unexpected("convert called on successful result"))
	}
	return Fail[T](r.err)
}
