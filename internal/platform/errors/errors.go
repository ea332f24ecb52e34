// Package errors provides error types and utilities for bannerscan.
// It extends the standard errors package with context wrapping and
// classification of socket-level failures.
package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates the pacing limiter refused to proceed
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnectionFailed indicates a connection could not be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionRefused indicates the remote host actively refused the connection
	ErrConnectionRefused = errors.New("connection refused")

	// ErrConnectionReset indicates the remote host dropped an established connection
	ErrConnectionReset = errors.New("connection reset")

	// ErrPanic indicates a task panicked and was recovered
	ErrPanic = errors.New("task panicked")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	conn, err := dialer.DialContext(ctx, "tcp", addr)
//	if err != nil {
//	    return errors.Wrap(err, "dial failed")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsTimeout reports whether the error is a timeout, either our own sentinel,
// a context deadline, or a net.Error reporting Timeout().
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if Is(err, ErrTimeout) || Is(err, context.DeadlineExceeded) || Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return As(err, &ne) && ne.Timeout()
}

// IsConnectionRefused reports whether the remote side refused the connection.
func IsConnectionRefused(err error) bool {
	return Is(err, ErrConnectionRefused) || Is(err, syscall.ECONNREFUSED)
}

// IsConnectionReset reports whether an established connection was dropped by the peer.
func IsConnectionReset(err error) bool {
	return Is(err, ErrConnectionReset) || Is(err, syscall.ECONNRESET) || Is(err, syscall.EPIPE)
}

// IsEOF reports whether the error marks a clean end of stream.
func IsEOF(err error) bool {
	return Is(err, io.EOF)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsConnectionFailed reports whether the error is a connection failed error
func IsConnectionFailed(err error) bool {
	return Is(err, ErrConnectionFailed)
}

// classifiedError tags a raw error with a sentinel kind. Its message is the
// raw error's so logs stay readable.
type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string   { return e.cause.Error() }
func (e *classifiedError) Unwrap() []error { return []error{e.kind, e.cause} }

// Classify maps a socket-level error onto one of the package sentinels,
// keeping the original error in the chain. Unknown errors are tagged
// ErrConnectionFailed.
func Classify(err error) error {
	var kind error
	switch {
	case err == nil:
		return nil
	case IsTimeout(err):
		kind = ErrTimeout
	case IsConnectionRefused(err):
		kind = ErrConnectionRefused
	case IsConnectionReset(err):
		kind = ErrConnectionReset
	default:
		kind = ErrConnectionFailed
	}
	return &classifiedError{kind: kind, cause: err}
}
