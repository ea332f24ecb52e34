// internal/adapters/output/yaml.go
package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"bannerscan/internal/core/domain"
)

// YAMLSink exporta el reporte en YAML, con las mismas reglas de destino que JSONSink.
type YAMLSink struct {
	Dir   string
	Label string

	// Out recibe el YAML cuando Dir está vacío.
	Out io.Writer

	lastPath string
}

// NewYAMLFileSink crea un sink que escribe en un archivo con timestamp dentro de dir.
func NewYAMLFileSink(dir, label string) *YAMLSink {
	return &YAMLSink{Dir: dir, Label: label}
}

// NewYAMLStreamSink crea un sink que escribe en w.
func NewYAMLStreamSink(w io.Writer) *YAMLSink {
	return &YAMLSink{Out: w}
}

// Name implementa ports.ResultSink.
func (s *YAMLSink) Name() string { return "yaml" }

// Path retorna el archivo escrito por el último Write.
func (s *YAMLSink) Path() string { return s.lastPath }

// Write implementa ports.ResultSink.
func (s *YAMLSink) Write(report *domain.ScanReport) error {
	if s.Dir == "" && s.Out != nil {
		return encodeYAML(s.Out, report)
	}

	f, path, err := createReportFile(s.Dir, reportFilename(s.Label, report.StartedAt, ".yaml"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := encodeYAML(f, report); err != nil {
		return err
	}
	s.lastPath = path
	return f.Close()
}

func encodeYAML(w io.Writer, report *domain.ScanReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
