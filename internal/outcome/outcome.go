// Package outcome provides a tagged result type with three variants:
// Loading (in progress), Success (payload), and Error (message). Every layer
// of the fetch pipeline exchanges Outcomes instead of raising failures, so
// all cases must be handled explicitly. Cancellation is never an Outcome; it
// travels as a regular Go error alongside one.
package outcome

import "fmt"

type variant uint8

const (
	loading variant = iota
	success
	failure
)

// Outcome is a tagged result. The zero value is Loading.
type Outcome[T any] struct {
	kind    variant
	value   T
	message string
}

// Pending returns the Loading variant.
func Pending[T any]() Outcome[T] {
	return Outcome[T]{kind: loading}
}

// OK returns the Success variant carrying v.
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{kind: success, value: v}
}

// Fail returns the Error variant carrying a human-readable message.
func Fail[T any](message string) Outcome[T] {
	return Outcome[T]{kind: failure, message: message}
}

// Failf is Fail with fmt.Sprintf formatting.
func Failf[T any](format string, args ...any) Outcome[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}

func (o Outcome[T]) IsLoading() bool { return o.kind == loading }
func (o Outcome[T]) IsSuccess() bool { return o.kind == success }
func (o Outcome[T]) IsError() bool   { return o.kind == failure }

// Value returns the payload. It is the zero value of T unless IsSuccess.
func (o Outcome[T]) Value() T { return o.value }

// Message returns the error message. It is empty unless IsError.
func (o Outcome[T]) Message() string { return o.message }
