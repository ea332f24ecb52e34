// internal/core/domain/errors.go
package domain

import (
	"errors"

	platformerrors "bannerscan/internal/platform/errors"
)

// Common domain errors.
var (
	// Input errors (fatal, surfaced before any scanning starts)
	ErrInvalidAddress     = errors.New("invalid IPv4 address")
	ErrInvalidRange       = errors.New("invalid address range")
	ErrInvalidPort        = errors.New("invalid port")
	ErrEmptyPorts         = errors.New("port set cannot be empty")
	ErrEmptyTargets       = errors.New("no targets to scan")
	ErrTooManyTargets     = errors.New("too many targets")
	ErrInvalidConcurrency = errors.New("concurrency must be positive")
	ErrInvalidDeadline    = errors.New("per-task deadline must be positive")

	// Per-target failures (recorded as outcomes, never propagated)
	ErrUnreachable   = errors.New("target unreachable")
	ErrTaskAbandoned = errors.New("task abandoned after deadline")

	// ErrTimeout is shared with the network classifier so connect timeouts
	// and read timeouts match the same sentinel.
	ErrTimeout = platformerrors.ErrTimeout

	// Scan errors
	ErrScanCanceled = errors.New("scan was canceled")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
