// internal/core/ports/prober.go
package ports

import (
	"context"

	"bannerscan/internal/core/domain"
)

// Prober is the port for probing a single target.
//
// Implementations must never return a socket failure as a Go error: every
// per-target failure is reported as a domain.Outcome. They should release
// their connection once ctx is canceled; a scan does not wait for them.
type Prober interface {
	Probe(ctx context.Context, target domain.Target) domain.Outcome
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, target domain.Target) domain.Outcome

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, target domain.Target) domain.Outcome {
	return f(ctx, target)
}
