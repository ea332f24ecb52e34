// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para modo raw (logs sin formato visual).
// Emite una línea por evento, apta para pipes y CI.
type RawPresenter struct {
	format    LogFormat
	w         io.Writer
	mu        sync.Mutex
	startTime time.Time
}

// NewRawPresenter crea un nuevo RawPresenter. Si w es nil escribe en stderr.
func NewRawPresenter(format LogFormat, w io.Writer) *RawPresenter {
	if w == nil {
		w = os.Stderr
	}
	return &RawPresenter{
		format:    format,
		w:         w,
		startTime: time.Now(),
	}
}

// log escribe un log en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]interface{}) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.w, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]interface{}) {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		logEntry["data"] = fields
	}

	jsonBytes, _ := json.Marshal(logEntry)
	fmt.Fprintln(r.w, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\n\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start inicia la presentación
func (r *RawPresenter) Start(info ScanInfo) {
	r.startTime = time.Now()
	r.log("INFO", "scan_started", map[string]interface{}{
		"range":           info.Range,
		"ports":           info.Ports,
		"targets":         info.Targets,
		"workers":         info.Workers,
		"connect_timeout": info.ConnectTimeout,
		"read_timeout":    info.ReadTimeout,
		"task_deadline":   info.TaskDeadline,
		"scheduler":       info.Scheduler,
		"rate":            rateLabel(info.RateLimit),
		"proxy":           ProxyHost(info.Proxy),
	})
}

// Result registra un resultado
func (r *RawPresenter) Result(line ResultLine) {
	r.log("INFO", "result", map[string]interface{}{
		"target":   line.Target,
		"status":   line.Status.String(),
		"summary":  line.Summary,
		"duration": line.Duration,
	})
}

// Dropped registra un objetivo descartado
func (r *RawPresenter) Dropped(target string, reason string) {
	r.log("WARN", "dropped", map[string]interface{}{
		"target": target,
		"reason": reason,
	})
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Finish finaliza la presentación con estadísticas finales
func (r *RawPresenter) Finish(stats ScanStats) {
	r.log("INFO", "scan_completed", map[string]interface{}{
		"duration":    stats.TotalDuration,
		"submitted":   stats.Submitted,
		"banners":     stats.Banners,
		"timeouts":    stats.Timeouts,
		"unreachable": stats.Unreachable,
		"dropped":     stats.Dropped,
		"throughput":  Throughput(stats),
	})
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
