// internal/adapters/output/file.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sanitizeLabel convierte la etiqueta del scan en un nombre de archivo válido.
// Ejemplo: "10.0.0.1-10.0.0.254" -> "10_0_0_1-10_0_0_254"
func sanitizeLabel(label string) string {
	if label == "" {
		return "scan"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, label)
}

// reportFilename genera "bannerscan_{label}_{timestamp}{suffix}".
func reportFilename(label string, at time.Time, suffix string) string {
	return fmt.Sprintf("bannerscan_%s_%s%s", sanitizeLabel(label), at.Format("20060102_150405"), suffix)
}

// createReportFile crea el directorio si no existe y abre el archivo de salida.
func createReportFile(dir, filename string) (*os.File, string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create output file: %w", err)
	}
	return f, path, nil
}
