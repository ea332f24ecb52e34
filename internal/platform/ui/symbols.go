// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status representa el estado final de un objetivo
type Status int

const (
	StatusPending Status = iota
	StatusBanner
	StatusTimeout
	StatusUnreachable
	StatusDropped
)

// StatusForOutcome convierte el tipo de outcome ("banner", "timeout",
// "unreachable") en un Status.
func StatusForOutcome(kind string) Status {
	switch kind {
	case "banner":
		return StatusBanner
	case "timeout":
		return StatusTimeout
	case "unreachable":
		return StatusUnreachable
	default:
		return StatusPending
	}
}

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusBanner:
		return "banner"
	case StatusTimeout:
		return "timeout"
	case StatusUnreachable:
		return "unreachable"
	case StatusDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusBanner:
		return "✓"
	case StatusTimeout:
		return "⚠"
	case StatusUnreachable:
		return "✗"
	case StatusDropped:
		return "⊘"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusPending:
		return pterm.FgGray
	case StatusBanner:
		return pterm.FgGreen
	case StatusTimeout:
		return pterm.FgYellow
	case StatusUnreachable:
		return pterm.FgRed
	case StatusDropped:
		return pterm.FgGray
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// Icons globales para diferentes elementos de la UI
var (
	IconTarget  = "🎯"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
	IconError   = "✗"
	IconSuccess = "✓"
	IconTime    = "⏱"
	IconWorkers = "⚙️"
	IconBanner  = "📜"
)

// Separadores y bordes
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)
