package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config and data at temp dirs and returns the data dir.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("DATEPICK_CONFIG_DIR", t.TempDir())
	t.Setenv("DATEPICK_DIR", "")
	t.Setenv("DATEPICK_LOCALE", "")
	t.Setenv("DATEPICK_FORMAT", "")
	return t.TempDir()
}

func mustData(t *testing.T, args ...string) any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: datepick %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	data, ok := env["data"]
	if !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return data
}

func mustObj(t *testing.T, args ...string) map[string]any {
	t.Helper()
	m, ok := mustData(t, args...).(map[string]any)
	if !ok {
		t.Fatalf("expected data object for %v", args)
	}
	return m
}

func TestParse_DatetimeValue(t *testing.T) {
	isolate(t)

	got := mustObj(t, "parse", "2025-01-05T09:30", "--mode", "datetime")
	if got["valid"] != true || got["normalized"] != "2025-01-05T09:30" || got["label"] != "Jan 5, 2025 09:30" {
		t.Fatalf("unexpected parse result: %#v", got)
	}
	rec := got["record"].(map[string]any)
	if rec["month"] != float64(0) || rec["day"] != float64(5) || rec["hour"] != float64(9) || rec["minute"] != float64(30) {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestParse_DateModeIgnoresTime(t *testing.T) {
	isolate(t)

	got := mustObj(t, "parse", "2025-01-05T09:30")
	if got["mode"] != "date" || got["valid"] != false || got["normalized"] != "2025-01-05" {
		t.Fatalf("unexpected parse result: %#v", got)
	}
}

func TestParse_LocaleLabel(t *testing.T) {
	isolate(t)

	got := mustObj(t, "--locale", "de-AT", "parse", "2025-03-14")
	if got["label"] != "Mär 14, 2025" {
		t.Fatalf("label=%v, want Mär 14, 2025", got["label"])
	}
}

func TestParse_InvalidModeFails(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, []string{"parse", "2025-01-05", "--mode", "week"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), `invalid --mode "week"`) {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestFormat_RollsOver(t *testing.T) {
	isolate(t)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"format", "--year", "2025", "--month", "1", "--day", "32"}, "2025-02-01"},
		{[]string{"format", "--year", "2024", "--month", "2", "--day", "29"}, "2024-02-29"},
		{[]string{"format", "--year", "2025", "--month", "12", "--day", "31", "--hour", "23", "--minute", "60", "--mode", "datetime"}, "2026-01-01T00:00"},
		{[]string{"format", "--year", "12345", "--month", "6", "--day", "1"}, "9999-06-01"},
	}
	for _, tc := range cases {
		got := mustObj(t, tc.args...)
		if got["value"] != tc.want {
			t.Fatalf("%v: value=%v, want %s", tc.args, got["value"], tc.want)
		}
	}
}

func TestCalendar_MarksBoundsAndSelection(t *testing.T) {
	isolate(t)

	got := mustObj(t, "calendar", "--value", "2025-03-14", "--min", "2025-03-10", "--max", "2025-03-20")
	if got["title"] != "March 2025" || got["year"] != float64(2025) || got["month"] != float64(3) {
		t.Fatalf("unexpected header: %#v", got)
	}
	weeks := got["weeks"].([]any)
	if len(weeks) != 6 {
		t.Fatalf("weeks=%d, want 6", len(weeks))
	}
	// March 1st 2025 is a Saturday.
	first := weeks[0].([]any)
	if first[5].(map[string]any)["day"] != float64(0) || first[6].(map[string]any)["day"] != float64(1) {
		t.Fatalf("unexpected first week: %#v", first)
	}

	cell := func(day int) map[string]any {
		for _, w := range weeks {
			for _, c := range w.([]any) {
				m := c.(map[string]any)
				if m["day"] == float64(day) {
					return m
				}
			}
		}
		t.Fatalf("day %d not found", day)
		return nil
	}
	if cell(9)["disabled"] != true || cell(21)["disabled"] != true {
		t.Fatalf("expected days outside bounds to be disabled")
	}
	if cell(10)["disabled"] == true || cell(20)["disabled"] == true {
		t.Fatalf("expected bounds to be inclusive")
	}
	if cell(14)["selected"] != true {
		t.Fatalf("expected 14 to be selected")
	}
}

func TestCalendar_InvalidMonthFails(t *testing.T) {
	isolate(t)

	if _, _, err := runCLI(t, []string{"calendar", "--year", "2025", "--month", "13"}); err == nil {
		t.Fatalf("expected error for --month 13")
	}
}

func TestCalendar_Render(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	stdout, stderr, err := runCLI(t, []string{"calendar", "--year", "2025", "--month", "2", "--render"})
	if err != nil {
		t.Fatalf("calendar --render: %v\n%s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"February 2025", "Su", "Sa", "28"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "29") {
		t.Fatalf("February 2025 has no 29th:\n%s", out)
	}
}

func TestPlace_FlipsAboveNearBottom(t *testing.T) {
	isolate(t)

	below := mustObj(t, "place", "--anchor", "20,40,200,32", "--viewport", "800")
	p := below["placement"].(map[string]any)
	if p["side"] != "below" || p["top"] != float64(76) || p["width"] != float64(280) {
		t.Fatalf("unexpected placement: %#v", p)
	}

	above := mustObj(t, "place", "--anchor", "20,700,300,32", "--viewport", "800", "--height", "320")
	p = above["placement"].(map[string]any)
	if p["side"] != "above" || p["bottom"] != float64(104) || p["width"] != float64(300) {
		t.Fatalf("unexpected placement: %#v", p)
	}
	pop := above["popover"].(map[string]any)
	if pop["top"] != float64(376) {
		t.Fatalf("popover top=%v, want 376", pop["top"])
	}
}

func TestPlace_UnmeasurableAnchorFails(t *testing.T) {
	isolate(t)

	if _, _, err := runCLI(t, []string{"place", "--anchor", "NaN,0,10,10", "--viewport", "800"}); err == nil {
		t.Fatalf("expected error for NaN anchor")
	}
	if _, _, err := runCLI(t, []string{"place", "--anchor", "1,2,3", "--viewport", "800"}); err == nil {
		t.Fatalf("expected error for short anchor")
	}
}

func TestDocs_TopicsAndRaw(t *testing.T) {
	isolate(t)

	got := mustObj(t, "docs")
	topics := got["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}

	stdout, _, err := runCLI(t, []string{"docs", "formats", "--raw"})
	if err != nil {
		t.Fatalf("docs --raw: %v", err)
	}
	if !strings.Contains(string(stdout), "YYYY-MM-DD") {
		t.Fatalf("expected raw markdown, got:\n%s", stdout)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}

func TestFormat_EDN(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, []string{"--format", "edn", "format", "--year", "2025", "--month", "3", "--day", "14"})
	if err != nil {
		t.Fatalf("format edn: %v", err)
	}
	if !strings.Contains(string(stdout), `:value "2025-03-14"`) {
		t.Fatalf("unexpected edn output:\n%s", stdout)
	}
}
