// internal/core/ports/sink.go
package ports

import (
	"bannerscan/internal/core/domain"
)

// ResultSink consumes a finished report for display or storage.
// Filtering non-informative outcomes is the sink's concern.
type ResultSink interface {
	// Name returns the sink name (e.g. "table", "json").
	Name() string

	// Write consumes the report.
	Write(report *domain.ScanReport) error
}
