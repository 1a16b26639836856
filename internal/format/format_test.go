package format

import (
	"bytes"
	"strings"
	"testing"
)

type placementOut struct {
	Side  string  `json:"side"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
	Note  *string `json:"note"`
}

func TestWriteEDN_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := map[string]any{
		"data": placementOut{Side: "above", Left: 12, Width: 24.5},
		"days": []int{1, 2, 3},
		"ok":   true,
	}
	if err := WriteEDN(&buf, v, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := `{:data {:left 12 :note nil :side "above" :width 24.5} :days [1 2 3] :ok true}` + "\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"value": "2025-01-10", "empty": []string{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :value \"2025-01-10\"\n}\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, map[string]any{}, "yaml", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestWriteJSON_DoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]string{"label": "<Jan 5>"}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"label\":\"<Jan 5>\"}\n" {
		t.Fatalf("unexpected json %q", got)
	}
}
