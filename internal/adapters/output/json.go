// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"bannerscan/internal/core/domain"
)

// JSONSink exporta el reporte completo en formato JSON, a un archivo dentro
// de Dir o, si Dir está vacío, al writer configurado.
type JSONSink struct {
	Dir    string
	Label  string
	Pretty bool

	// Out recibe el JSON cuando Dir está vacío.
	Out io.Writer

	lastPath string
}

// NewJSONFileSink crea un sink que escribe en un archivo con timestamp dentro de dir.
func NewJSONFileSink(dir, label string) *JSONSink {
	return &JSONSink{Dir: dir, Label: label, Pretty: true}
}

// NewJSONStreamSink crea un sink que escribe en w.
func NewJSONStreamSink(w io.Writer, pretty bool) *JSONSink {
	return &JSONSink{Out: w, Pretty: pretty}
}

// Name implementa ports.ResultSink.
func (s *JSONSink) Name() string { return "json" }

// Path retorna el archivo escrito por el último Write (vacío en modo stream).
func (s *JSONSink) Path() string { return s.lastPath }

// Write implementa ports.ResultSink.
func (s *JSONSink) Write(report *domain.ScanReport) error {
	if s.Dir == "" && s.Out != nil {
		return s.encode(s.Out, report)
	}

	f, path, err := createReportFile(s.Dir, reportFilename(s.Label, report.StartedAt, ".json"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.encode(f, report); err != nil {
		return err
	}
	s.lastPath = path
	return f.Close()
}

func (s *JSONSink) encode(w io.Writer, report *domain.ScanReport) error {
	enc := json.NewEncoder(w)
	if s.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
