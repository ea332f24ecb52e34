// internal/adapters/output/streaming.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/platform/logx"
)

// StreamingWriter escribe cada resultado en cuanto se recolecta, una línea
// JSON por objetivo (NDJSON), para no perder datos si el scan se interrumpe.
// Implementa ports.ScanObserver.
type StreamingWriter struct {
	baseDir   string
	label     string
	timestamp string
	logger    logx.Logger

	mu      sync.Mutex
	file    *os.File
	enc     *json.Encoder
	path    string
	written int
	err     error
}

// NewStreamingWriter crea un nuevo writer de streaming. El archivo se crea en ScanStarted.
func NewStreamingWriter(baseDir, label string, logger logx.Logger) *StreamingWriter {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &StreamingWriter{
		baseDir:   baseDir,
		label:     label,
		timestamp: time.Now().Format("20060102_150405"),
		logger:    logger.With("component", "streaming-writer"),
	}
}

// Filename retorna el nombre del archivo parcial.
// Formato: bannerscan_{label}_{timestamp}_partial.ndjson
func (w *StreamingWriter) Filename() string {
	return fmt.Sprintf("bannerscan_%s_%s_partial.ndjson", sanitizeLabel(w.label), w.timestamp)
}

// Path retorna la ruta del archivo abierto (vacía antes de ScanStarted).
func (w *StreamingWriter) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Written retorna cuántos resultados se escribieron.
func (w *StreamingWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Err retorna el primer error de escritura, si lo hubo.
func (w *StreamingWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// ScanStarted abre el archivo de salida.
func (w *StreamingWriter) ScanStarted(total int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, path, err := createReportFile(w.baseDir, w.Filename())
	if err != nil {
		w.fail(err)
		return
	}

	w.file = f
	w.path = path
	w.enc = json.NewEncoder(f)
	w.logger.Debug("streaming results", "file", path, "targets", total)
}

// ResultCollected añade una línea al archivo.
func (w *StreamingWriter) ResultCollected(result domain.ScanResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil || w.err != nil {
		return
	}
	if err := w.enc.Encode(result); err != nil {
		w.fail(fmt.Errorf("failed to encode partial result: %w", err))
		return
	}
	w.written++
}

// TaskDropped no escribe nada: los objetivos descartados no tienen resultado.
func (w *StreamingWriter) TaskDropped(domain.Target, error) {}

// ScanFinished cierra el archivo.
func (w *StreamingWriter) ScanFinished(*domain.ScanReport) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return
	}
	if err := w.file.Close(); err != nil {
		w.fail(fmt.Errorf("failed to close partial file: %w", err))
	}
	w.file = nil
	w.enc = nil

	w.logger.Debug("streaming finished", "file", w.path, "results", w.written)
}

// fail guarda el primer error. Requiere w.mu.
func (w *StreamingWriter) fail(err error) {
	if w.err == nil {
		w.err = err
		w.logger.Warn("streaming writer disabled", "error", err.Error())
	}
}
