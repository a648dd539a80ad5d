// Package errors provides structured error handling for frameclock.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration loading or validation error.
	KindConfig
	// KindSource indicates a frame source construction or metadata error.
	KindSource
	// KindRender indicates a frame rendering error.
	KindRender
	// KindServe indicates a diagnostics server error.
	KindServe
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSource:
		return "source"
	case KindRender:
		return "render"
	case KindServe:
		return "serve"
	default:
		return "unknown"
	}
}

// Error represents a structured frameclock error.
type Error struct {
	// Op is the operation that failed (e.g., "sources.NewFrames").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// E constructs an Error with the current time.
func E(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target. Re-exported
// so callers of this package do not also need the standard errors package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// KindOf returns the kind of err if it is an *Error, KindUnknown otherwise.
func KindOf(err error) ErrorKind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Handler receives errors reported by frameclock components that cannot
// sensibly surface them through return values, such as the diagnostics
// server's background goroutine.
type Handler interface {
	HandleError(err *Error)
}
