// internal/core/usecases/probe_task.go
package usecases

import (
	"context"
	"time"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/core/ports"
)

// ProbeTask adapts a ports.Prober call on one target to workerpool.Task.
type ProbeTask struct {
	prober ports.Prober
	target domain.Target

	// Result storage, written once by the executing worker.
	result domain.ScanResult
}

// NewProbeTask creates a task.
func NewProbeTask(prober ports.Prober, target domain.Target) *ProbeTask {
	return &ProbeTask{prober: prober, target: target}
}

// Execute probes the target. Probers report failures as outcomes, so the
// only error path is a panic recovered by the pool.
func (pt *ProbeTask) Execute(ctx context.Context) error {
	start := time.Now()
	outcome := pt.prober.Probe(ctx, pt.target)
	pt.result = domain.NewScanResult(pt.target, outcome, time.Since(start))
	return nil
}

// Name returns "address:port".
func (pt *ProbeTask) Name() string {
	return pt.target.HostPort()
}

// Group returns the target address so schedulers can spread hosts.
func (pt *ProbeTask) Group() string {
	return pt.target.Address.String()
}

// Target returns the probed target.
func (pt *ProbeTask) Target() domain.Target {
	return pt.target
}

// Result returns the scan result. Only valid once the task's future is done
// and Execute returned nil.
func (pt *ProbeTask) Result() domain.ScanResult {
	return pt.result
}
