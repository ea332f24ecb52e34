// internal/adapters/output/helpers_test.go
package output

import (
	"time"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/platform/errors"
)

func sampleReport() *domain.ScanReport {
	addr := domain.MustParseAddress("10.0.0.1")
	report := domain.NewScanReport(4)

	report.Add(domain.NewScanResult(domain.NewTarget(addr, 22),
		domain.Banner("SSH-2.0-OpenSSH_9.6\n"), 12*time.Millisecond))
	report.Add(domain.NewScanResult(domain.NewTarget(addr, 25),
		domain.Timeout("220 mail ESMTP\n"), 3*time.Second))
	report.Add(domain.NewScanResult(domain.NewTarget(addr, 9999),
		domain.Unreachable(errors.ErrConnectionRefused), time.Millisecond))
	report.Drop()
	report.Finalize()

	return report
}
