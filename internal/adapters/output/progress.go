// internal/adapters/output/progress.go
package output

import (
	"bannerscan/internal/core/domain"
	"bannerscan/internal/platform/ui"
)

// ProgressObserver traduce los eventos del coordinador a llamadas del Presenter.
type ProgressObserver struct {
	presenter ui.Presenter
	info      ui.ScanInfo
}

// NewProgressObserver crea el observer. info se completa con el total de
// objetivos al iniciar el scan.
func NewProgressObserver(p ui.Presenter, info ui.ScanInfo) *ProgressObserver {
	if p == nil {
		p = ui.NewNoopPresenter()
	}
	return &ProgressObserver{presenter: p, info: info}
}

func (o *ProgressObserver) ScanStarted(total int) {
	info := o.info
	info.Targets = total
	o.presenter.Start(info)
}

func (o *ProgressObserver) ResultCollected(r domain.ScanResult) {
	o.presenter.Result(ui.ResultLine{
		Target:   r.Target.HostPort(),
		Status:   ui.StatusForOutcome(r.Outcome.Kind.String()),
		Summary:  summarize(r.Outcome),
		Duration: r.Duration,
	})
}

func (o *ProgressObserver) TaskDropped(target domain.Target, reason error) {
	msg := ""
	if reason != nil {
		msg = reason.Error()
	}
	o.presenter.Dropped(target.HostPort(), msg)
}

func (o *ProgressObserver) ScanFinished(report *domain.ScanReport) {
	if report == nil {
		return
	}
	o.presenter.Finish(StatsFor(report))
}

// StatsFor resume un reporte en las estadísticas que muestra la UI.
func StatsFor(report *domain.ScanReport) ui.ScanStats {
	counts := report.Stats()
	return ui.ScanStats{
		TotalDuration: report.Duration(),
		Submitted:     report.Submitted,
		Banners:       counts[domain.OutcomeBanner],
		Timeouts:      counts[domain.OutcomeTimeout],
		Unreachable:   counts[domain.OutcomeUnreachable],
		Dropped:       report.Dropped,
	}
}
