// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModeCompact UIMode = "compact" // Barra de progreso (default)
	UIModeRaw     UIMode = "raw"     // Una línea por evento, sin formato visual
	UIModeQuiet   UIMode = "quiet"   // Sin UI visual
)

// ParseUIMode convierte un valor de configuración; valores desconocidos son compact.
func ParseUIMode(s string) UIMode {
	switch UIMode(s) {
	case UIModeRaw:
		return UIModeRaw
	case UIModeQuiet:
		return UIModeQuiet
	default:
		return UIModeCompact
	}
}

// Presenter define la interfaz para presentar el progreso del scan
// de manera visual e interactiva.
type Presenter interface {
	// Start inicia la presentación con información del escaneo
	Start(info ScanInfo)

	// Result notifica un resultado recolectado
	Result(line ResultLine)

	// Dropped notifica un objetivo descartado por el coordinador
	Dropped(target string, reason string)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish finaliza la presentación con estadísticas finales
	Finish(stats ScanStats)

	// Close limpia recursos del presenter
	Close() error
}

// ScanInfo contiene información inicial del escaneo
type ScanInfo struct {
	Range          string
	Ports          string
	Targets        int
	Workers        int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	TaskDeadline   time.Duration
	Scheduler      string
	RateLimit      int
	Proxy          string
}

// ResultLine describe un resultado individual
type ResultLine struct {
	Target   string
	Status   Status
	Summary  string
	Duration time.Duration
}

// ScanStats contiene estadísticas finales del escaneo
type ScanStats struct {
	TotalDuration time.Duration
	Submitted     int
	Banners       int
	Timeouts      int
	Unreachable   int
	Dropped       int
}

// New crea el presenter para el modo indicado.
func New(mode UIMode) Presenter {
	switch mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModeRaw:
		return NewRawPresenter(LogFormatText, nil)
	default:
		return NewPTermPresenter()
	}
}
