// internal/core/domain/scan_result.go
package domain

import (
	"time"
)

// ScanResult pairs a target with its outcome. Immutable once built.
type ScanResult struct {
	Target   Target        `json:"target" yaml:"target"`
	Outcome  Outcome       `json:"outcome" yaml:"outcome"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// NewScanResult builds a result.
func NewScanResult(target Target, outcome Outcome, duration time.Duration) ScanResult {
	return ScanResult{Target: target, Outcome: outcome, Duration: duration}
}

// ScanReport is the collection of results for one scan. Results are in
// submission order (address-major, port-minor). Targets whose task was
// abandoned or failed are absent and counted in Dropped.
type ScanReport struct {
	Results    []ScanResult `json:"results" yaml:"results"`
	Submitted  int          `json:"submitted" yaml:"submitted"`
	Dropped    int          `json:"dropped" yaml:"dropped"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
}

// NewScanReport creates an empty report for n submitted targets.
func NewScanReport(submitted int) *ScanReport {
	return &ScanReport{
		Results:   make([]ScanResult, 0, submitted),
		Submitted: submitted,
		StartedAt: time.Now(),
	}
}

// Add appends a result.
func (r *ScanReport) Add(res ScanResult) {
	r.Results = append(r.Results, res)
}

// Drop records a target whose result never arrived.
func (r *ScanReport) Drop() {
	r.Dropped++
}

// Finalize stamps the completion time.
func (r *ScanReport) Finalize() {
	r.FinishedAt = time.Now()
}

// Duration returns the wall time of the scan.
func (r *ScanReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Len returns the number of collected results.
func (r *ScanReport) Len() int {
	return len(r.Results)
}

// Stats counts results by outcome kind.
func (r *ScanReport) Stats() map[OutcomeKind]int {
	stats := make(map[OutcomeKind]int, 3)
	for _, res := range r.Results {
		stats[res.Outcome.Kind]++
	}
	return stats
}

// Filter returns the results matching keep, preserving order.
func (r *ScanReport) Filter(keep func(ScanResult) bool) []ScanResult {
	out := make([]ScanResult, 0, len(r.Results))
	for _, res := range r.Results {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out
}

// Reachable returns every result that is not Unreachable.
func (r *ScanReport) Reachable() []ScanResult {
	return r.Filter(func(res ScanResult) bool {
		return !res.Outcome.IsUnreachable()
	})
}
