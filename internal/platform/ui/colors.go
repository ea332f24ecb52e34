// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores de la terminal

// Colores primarios
var (
	// SignalAmber - Elementos principales, headers
	SignalAmber = pterm.NewRGB(255, 176, 0)

	// AlertRed - Errores
	AlertRed = pterm.NewRGB(215, 38, 56)

	// MutedGray - Texto secundario, elementos deshabilitados
	MutedGray = pterm.NewRGB(110, 110, 110)

	// PhosphorGreen - Banners capturados, operaciones exitosas
	PhosphorGreen = pterm.NewRGB(51, 255, 102)
)

// Estilos preconfigurados para diferentes contextos
var (
	// StylePrimary - Estilo principal para headers y elementos destacados
	StylePrimary = SignalAmber.ToRGBStyle()

	// StyleSuccess - Estilo para operaciones exitosas
	StyleSuccess = PhosphorGreen.ToRGBStyle()

	// StyleError - Estilo para errores
	StyleError = AlertRed.ToRGBStyle()

	// StyleSecondary - Estilo para texto secundario
	StyleSecondary = MutedGray.ToRGBStyle()
)
