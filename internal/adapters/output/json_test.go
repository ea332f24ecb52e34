// internal/adapters/output/json_test.go
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bannerscan/internal/testutil"
)

type decodedReport struct {
	Results []struct {
		Target struct {
			Address string `json:"address"`
			Port    int    `json:"port"`
		} `json:"target"`
		Outcome struct {
			Kind  string `json:"kind"`
			Text  string `json:"text"`
			Cause string `json:"cause"`
		} `json:"outcome"`
	} `json:"results"`
	Submitted int `json:"submitted"`
	Dropped   int `json:"dropped"`
}

func TestJSONSink_File(t *testing.T) {
	tmpDir := t.TempDir()
	sink := NewJSONFileSink(tmpDir, "10.0.0.1-10.0.0.2")

	err := sink.Write(sampleReport())
	testutil.AssertNoError(t, err, "write")

	files, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("failed to read output directory: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	filename := files[0].Name()
	testutil.AssertTrue(t, strings.HasPrefix(filename, "bannerscan_10_0_0_1-10_0_0_2_"), "filename prefix: "+filename)
	testutil.AssertTrue(t, strings.HasSuffix(filename, ".json"), "filename suffix")
	testutil.AssertEqual(t, sink.Path(), filepath.Join(tmpDir, filename), "reported path")

	data, err := os.ReadFile(sink.Path())
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	var got decodedReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	testutil.AssertEqual(t, got.Submitted, 4, "submitted")
	testutil.AssertEqual(t, got.Dropped, 1, "dropped")
	testutil.AssertEqual(t, len(got.Results), 3, "results")
	testutil.AssertEqual(t, got.Results[0].Target.Address, "10.0.0.1", "address as dotted decimal")
	testutil.AssertEqual(t, got.Results[0].Target.Port, 22, "port")
	testutil.AssertEqual(t, got.Results[0].Outcome.Kind, "banner", "kind")
	testutil.AssertEqual(t, got.Results[0].Outcome.Text, "SSH-2.0-OpenSSH_9.6\n", "text")
	testutil.AssertEqual(t, got.Results[1].Outcome.Kind, "timeout", "timeout kind")
	testutil.AssertEqual(t, got.Results[2].Outcome.Kind, "unreachable", "unreachable kind")
	testutil.AssertEqual(t, got.Results[2].Outcome.Cause, "connection refused", "cause")

	testutil.AssertTrue(t, strings.Contains(string(data), "\n  "), "pretty-printed")
}

func TestJSONSink_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := NewJSONFileSink(dir, "")

	testutil.AssertNoError(t, sink.Write(sampleReport()), "write")
	testutil.AssertTrue(t, strings.HasPrefix(filepath.Base(sink.Path()), "bannerscan_scan_"), "default label")
}

func TestJSONSink_Stream(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONStreamSink(&buf, false)

	testutil.AssertNoError(t, sink.Write(sampleReport()), "write")
	testutil.AssertEqual(t, sink.Path(), "", "no file in stream mode")

	var got decodedReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	testutil.AssertEqual(t, len(got.Results), 3, "results")
	testutil.AssertEqual(t, strings.Count(strings.TrimSpace(buf.String()), "\n"), 0, "compact output is one line")
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.0.0.1-10.0.0.9", "10_0_0_1-10_0_0_9"},
		{"192.168.1.0/24", "192_168_1_0_24"},
		{"", "scan"},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, sanitizeLabel(tt.in), tt.want, tt.in)
	}
}
