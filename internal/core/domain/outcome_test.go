// internal/core/domain/outcome_test.go
package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"bannerscan/internal/testutil"
)

func TestOutcome_Constructors(t *testing.T) {
	b := Banner("SSH-2.0-OpenSSH_9.6\n")
	testutil.AssertTrue(t, b.IsBanner(), "banner kind")
	testutil.AssertTrue(t, b.HasText(), "banner has text")
	testutil.AssertNil(t, b.Cause, "banner has no cause")

	silent := Banner("")
	testutil.AssertTrue(t, silent.IsBanner(), "silent service is still a banner")
	testutil.AssertFalse(t, silent.HasText(), "silent banner has no text")

	cause := errors.New("connection refused")
	u := Unreachable(cause)
	testutil.AssertTrue(t, u.IsUnreachable(), "unreachable kind")
	testutil.AssertTrue(t, errors.Is(u.Cause, cause), "cause preserved")

	testutil.AssertTrue(t, errors.Is(Unreachable(nil).Cause, ErrUnreachable), "nil cause defaults")

	to := Timeout("220 partial")
	testutil.AssertTrue(t, to.IsTimeout(), "timeout kind")
	testutil.AssertEqual(t, to.Text, "220 partial", "partial text kept")
	testutil.AssertTrue(t, errors.Is(to.Cause, ErrTimeout), "timeout cause")
}

func TestOutcome_Lines(t *testing.T) {
	o := Banner("220 mail ESMTP\n250 HELP\n")
	lines := o.Lines()
	testutil.AssertEqual(t, len(lines), 2, "line count")
	testutil.AssertEqual(t, lines[0], "220 mail ESMTP", "first line")

	testutil.AssertEqual(t, len(Banner("").Lines()), 0, "empty banner has no lines")
}

func TestOutcomeKind_IsValid(t *testing.T) {
	testutil.AssertTrue(t, OutcomeBanner.IsValid(), "banner")
	testutil.AssertTrue(t, OutcomeUnreachable.IsValid(), "unreachable")
	testutil.AssertTrue(t, OutcomeTimeout.IsValid(), "timeout")
	testutil.AssertFalse(t, OutcomeKind("other").IsValid(), "unknown")
}

func TestScanResult_JSON(t *testing.T) {
	res := NewScanResult(
		NewTarget(MustParseAddress("10.0.0.1"), 9999),
		Unreachable(errors.New("connection refused")),
		15*time.Millisecond,
	)

	data, err := json.Marshal(res)
	testutil.AssertNoError(t, err, "marshal")

	s := string(data)
	testutil.AssertTrue(t, strings.Contains(s, `"address":"10.0.0.1"`), "address in dotted form")
	testutil.AssertTrue(t, strings.Contains(s, `"kind":"unreachable"`), "kind")
	testutil.AssertTrue(t, strings.Contains(s, `"cause":"connection refused"`), "cause text")
}

func TestScanReport_StatsWithDrop(t *testing.T) {
	report := NewScanReport(4)
	tgt := NewTarget(MustParseAddress("10.0.0.1"), 22)

	report.Add(NewScanResult(tgt, Banner("SSH-2.0\n"), 0))
	report.Add(NewScanResult(tgt, Banner(""), 0))
	report.Add(NewScanResult(tgt, Unreachable(nil), 0))
	report.Drop()
	report.Finalize()

	stats := report.Stats()
	testutil.AssertEqual(t, stats[OutcomeBanner], 2, "banners")
	testutil.AssertEqual(t, stats[OutcomeUnreachable], 1, "unreachable")
	testutil.AssertEqual(t, stats[OutcomeTimeout], 0, "timeouts")
	testutil.AssertEqual(t, report.Len(), 3, "collected")
	testutil.AssertEqual(t, report.Dropped, 1, "dropped")
	testutil.AssertEqual(t, len(report.Reachable()), 2, "reachable filter")
	testutil.AssertTrue(t, report.Duration() >= 0, "duration")
}
