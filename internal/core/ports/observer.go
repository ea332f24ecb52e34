// internal/core/ports/observer.go
package ports

import (
	"bannerscan/internal/core/domain"
)

// ScanObserver receives progress notifications from the coordinator.
// Calls are made from the collecting goroutine, one at a time.
type ScanObserver interface {
	// ScanStarted is called once with the number of submitted targets.
	ScanStarted(total int)

	// ResultCollected is called for every result added to the report.
	ResultCollected(result domain.ScanResult)

	// TaskDropped is called for every target whose result was dropped.
	TaskDropped(target domain.Target, reason error)

	// ScanFinished is called once with the final report.
	ScanFinished(report *domain.ScanReport)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) ScanStarted(int)                   {}
func (NopObserver) ResultCollected(domain.ScanResult) {}
func (NopObserver) TaskDropped(domain.Target, error)  {}
func (NopObserver) ScanFinished(*domain.ScanReport)   {}

// MultiObserver fans notifications out to several observers in order.
type MultiObserver []ScanObserver

func (m MultiObserver) ScanStarted(total int) {
	for _, o := range m {
		o.ScanStarted(total)
	}
}

func (m MultiObserver) ResultCollected(result domain.ScanResult) {
	for _, o := range m {
		o.ResultCollected(result)
	}
}

func (m MultiObserver) TaskDropped(target domain.Target, reason error) {
	for _, o := range m {
		o.TaskDropped(target, reason)
	}
}

func (m MultiObserver) ScanFinished(report *domain.ScanReport) {
	for _, o := range m {
		o.ScanFinished(report)
	}
}
