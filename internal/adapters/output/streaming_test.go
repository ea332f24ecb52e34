// internal/adapters/output/streaming_test.go
package output

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"bannerscan/internal/testutil"
)

func TestStreamingWriter_WritesOneLinePerResult(t *testing.T) {
	tmpDir := t.TempDir()
	writer := NewStreamingWriter(tmpDir, "10.0.0.1-10.0.0.1", nil)
	report := sampleReport()

	writer.ScanStarted(report.Submitted)
	for _, r := range report.Results {
		writer.ResultCollected(r)
	}
	writer.TaskDropped(report.Results[0].Target, nil)
	writer.ScanFinished(report)

	testutil.AssertNoError(t, writer.Err(), "no write error")
	testutil.AssertEqual(t, writer.Written(), 3, "written")
	testutil.AssertTrue(t, strings.HasSuffix(writer.Path(), "_partial.ndjson"), "partial file name")

	f, err := os.Open(writer.Path())
	if err != nil {
		t.Fatalf("failed to open partial file: %v", err)
	}
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines+1, err)
		}
		lines++
	}
	testutil.AssertEqual(t, lines, 3, "lines")
}

func TestStreamingWriter_UnwritableDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := tmpDir + "/file"
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	writer := NewStreamingWriter(blocker, "scan", nil)
	writer.ScanStarted(1)
	writer.ResultCollected(sampleReport().Results[0])
	writer.ScanFinished(nil)

	testutil.AssertError(t, writer.Err(), "directory creation fails")
	testutil.AssertEqual(t, writer.Written(), 0, "nothing written")
}
