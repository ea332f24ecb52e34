// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar la barra de progreso, colores y símbolos en la terminal.
type PTermPresenter struct {
	mu sync.Mutex

	// Tracking de progreso
	total         int
	done          int
	counts        map[Status]int
	scanStartTime time.Time

	// Barra de progreso activa (nil si no se pudo iniciar)
	bar *pterm.ProgressbarPrinter

	// Configuración
	scanInfo ScanInfo
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{
		counts: make(map[Status]int),
	}
}

// Start inicia la presentación mostrando el header del escaneo
func (p *PTermPresenter) Start(info ScanInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scanInfo = info
	p.total = info.Targets
	p.done = 0
	p.counts = make(map[Status]int)
	p.scanStartTime = time.Now()

	// Header principal
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("bannerscan - TCP Banner Grabber")

	pterm.Println()

	// Información del scan
	infoPanel := pterm.DefaultBox.
		WithTitle("Scan Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow))

	body := fmt.Sprintf("%s Range: %s\n", IconTarget, pterm.Cyan(info.Range))
	body += fmt.Sprintf("   Ports: %s\n", pterm.Cyan(info.Ports))
	body += fmt.Sprintf("   Targets: %d\n", info.Targets)
	body += fmt.Sprintf("%s Workers: %d (%s)\n", IconWorkers, info.Workers, info.Scheduler)
	body += fmt.Sprintf("%s Connect/Read: %s / %s\n", IconTime, FormatDuration(info.ConnectTimeout), FormatDuration(info.ReadTimeout))
	body += fmt.Sprintf("   Task deadline: %s\n", FormatDuration(info.TaskDeadline))
	body += fmt.Sprintf("   Rate limit: %s\n", highlight(rateLabel(info.RateLimit), info.RateLimit > 0))
	body += fmt.Sprintf("   Proxy: %s", highlight(ProxyHost(info.Proxy), info.Proxy != ""))

	infoPanel.Println(body)
	pterm.Println()

	if info.Targets > 0 {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(info.Targets).
			WithTitle(p.titleUnsafe()).
			WithRemoveWhenDone(true).
			Start()
		if err == nil {
			p.bar = bar
		}
	}
}

// Result avanza la barra e imprime los banners capturados encima de ella
func (p *PTermPresenter) Result(line ResultLine) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.counts[line.Status]++

	if line.Status == StatusBanner && line.Summary != "" {
		pterm.Println(fmt.Sprintf("  %s %s %s",
			line.Status.Style().Sprint(line.Status.Symbol()),
			pterm.Cyan(line.Target),
			line.Summary,
		))
	}

	p.advanceUnsafe()
}

// Dropped avanza la barra para un objetivo descartado
func (p *PTermPresenter) Dropped(target string, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.counts[StatusDropped]++
	p.advanceUnsafe()
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	pterm.Error.Println(msg)
}

// Finish finaliza la presentación con estadísticas finales
func (p *PTermPresenter) Finish(stats ScanStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopBarUnsafe()

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()

	statsPanel := pterm.DefaultBox.
		WithTitle("Scan Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))

	content := fmt.Sprintf("%s Total Duration: %s\n", IconTime, pterm.Green(FormatDuration(stats.TotalDuration)))
	content += fmt.Sprintf("   Throughput: %.1f targets/s\n", Throughput(stats))
	content += fmt.Sprintf("%s Banners: %s\n", IconBanner, pterm.Green(fmt.Sprintf("%d", stats.Banners)))
	content += fmt.Sprintf("   Timeouts: %s\n", pterm.Yellow(fmt.Sprintf("%d", stats.Timeouts)))
	content += fmt.Sprintf("   Unreachable: %s", pterm.Red(fmt.Sprintf("%d", stats.Unreachable)))

	if stats.Dropped > 0 {
		content += fmt.Sprintf("\n%s Dropped: %s", IconWarning, pterm.Gray(fmt.Sprintf("%d", stats.Dropped)))
	}

	statsPanel.Println(content)
	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopBarUnsafe()
	return nil
}

// Progress retorna los objetivos procesados y el total
func (p *PTermPresenter) Progress() (done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.total
}

// Count retorna cuántos objetivos terminaron con el estado dado
func (p *PTermPresenter) Count(s Status) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[s]
}

func (p *PTermPresenter) advanceUnsafe() {
	if p.bar == nil {
		return
	}
	p.bar.UpdateTitle(p.titleUnsafe())
	p.bar.Increment()
}

func (p *PTermPresenter) stopBarUnsafe() {
	if p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
	p.bar = nil
}

// titleUnsafe arma el título de la barra con los contadores actuales
func (p *PTermPresenter) titleUnsafe() string {
	return fmt.Sprintf("Scanning %s %d %s %d %s %d",
		StatusBanner.Symbol(), p.counts[StatusBanner],
		StatusTimeout.Symbol(), p.counts[StatusTimeout],
		StatusUnreachable.Symbol(), p.counts[StatusUnreachable],
	)
}

// highlight resalta los ajustes activos y atenúa los valores por defecto
func highlight(label string, active bool) string {
	if active {
		return StyleSuccess.Sprint(label)
	}
	return StyleSecondary.Sprint(label)
}
