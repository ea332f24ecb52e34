// internal/adapters/output/table_test.go
package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/testutil"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	m.Run()
}

func TestTableSink_HidesUnreachable(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTableSink(&buf, false)

	testutil.AssertNoError(t, sink.Write(sampleReport()), "write")
	out := buf.String()

	testutil.AssertTrue(t, strings.Contains(out, "TARGET"), "header")
	testutil.AssertTrue(t, strings.Contains(out, "10.0.0.1:22"), "banner row")
	testutil.AssertTrue(t, strings.Contains(out, "SSH-2.0-OpenSSH_9.6"), "banner text")
	testutil.AssertTrue(t, strings.Contains(out, "10.0.0.1:25"), "timeout row")
	testutil.AssertFalse(t, strings.Contains(out, "10.0.0.1:9999"), "unreachable row hidden")
	testutil.AssertTrue(t, strings.Contains(out, "Unreachable: 1"), "summary still counts unreachable")
	testutil.AssertTrue(t, strings.Contains(out, "Dropped: 1"), "summary counts dropped")
}

func TestTableSink_ShowAll(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTableSink(&buf, true)

	testutil.AssertNoError(t, sink.Write(sampleReport()), "write")
	out := buf.String()

	testutil.AssertTrue(t, strings.Contains(out, "10.0.0.1:9999"), "unreachable row shown")
	testutil.AssertTrue(t, strings.Contains(out, "connection refused"), "cause shown")
}

func TestTableSink_NothingReachable(t *testing.T) {
	report := domain.NewScanReport(1)
	report.Add(domain.NewScanResult(
		domain.NewTarget(domain.MustParseAddress("10.0.0.2"), 80),
		domain.Unreachable(nil), 0))
	report.Finalize()

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewTableSink(&buf, false).Write(report), "write")
	testutil.AssertTrue(t, strings.Contains(buf.String(), "No banners collected."), "empty message")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		want    string
	}{
		{"single line", domain.Banner("220 ready\n"), "220 ready"},
		{"multi line", domain.Banner("HTTP/1.0 200 OK\nServer: x\n\n"), "HTTP/1.0 200 OK (+2 lines)"},
		{"silent", domain.Banner(""), "-"},
		{"timeout without data", domain.Timeout(""), "-"},
		{"unreachable", domain.Unreachable(nil), "target unreachable"},
		{"long line", domain.Banner(strings.Repeat("a", 100) + "\n"), strings.Repeat("a", 77) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, summarize(tt.outcome), tt.want, "summary")
		})
	}
}
