// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/platform/ui"
)

// TableSink imprime una tabla legible en terminal.
// Por defecto oculta los objetivos Unreachable: solo interesan los servicios vivos.
type TableSink struct {
	w       io.Writer
	showAll bool
}

// NewTableSink crea un sink de tabla. showAll incluye también los Unreachable.
func NewTableSink(w io.Writer, showAll bool) *TableSink {
	return &TableSink{w: w, showAll: showAll}
}

// Name implementa ports.ResultSink.
func (s *TableSink) Name() string { return "table" }

// Write implementa ports.ResultSink.
func (s *TableSink) Write(report *domain.ScanReport) error {
	rows := report.Results
	if !s.showAll {
		rows = report.Reachable()
	}

	stats := report.Stats()
	fmt.Fprintf(s.w, "\n=== bannerscan results ===\n")
	fmt.Fprintf(s.w, "Targets: %d  Banners: %d  Timeouts: %d  Unreachable: %d  Dropped: %d  Duration: %s\n\n",
		report.Submitted,
		stats[domain.OutcomeBanner],
		stats[domain.OutcomeTimeout],
		stats[domain.OutcomeUnreachable],
		report.Dropped,
		ui.FormatDuration(report.Duration()),
	)

	if len(rows) == 0 {
		fmt.Fprintln(s.w, "No banners collected.")
		return nil
	}

	data := pterm.TableData{{"TARGET", "STATUS", "BANNER", "TIME"}}
	for _, r := range rows {
		status := ui.StatusForOutcome(string(r.Outcome.Kind))
		data = append(data, []string{
			r.Target.String(),
			status.Symbol() + " " + status.String(),
			summarize(r.Outcome),
			ui.FormatDuration(r.Duration),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	if _, err := fmt.Fprintln(s.w, table); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// summarize devuelve la primera línea del banner (o la causa si no hay texto)
// y cuántas líneas quedaron fuera.
func summarize(o domain.Outcome) string {
	lines := o.Lines()
	if len(lines) == 0 {
		if o.IsUnreachable() && o.Cause != nil {
			return o.Cause.Error()
		}
		return "-"
	}

	first := strings.TrimSpace(lines[0])
	if len(first) > 80 {
		first = first[:77] + "..."
	}
	if extra := len(lines) - 1; extra > 0 {
		first += fmt.Sprintf(" (+%d lines)", extra)
	}
	return first
}
