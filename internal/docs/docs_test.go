package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "formats,keys,placement,values" {
		t.Fatalf("unexpected topics %q", got)
	}
}

func TestGet_IsCaseInsensitive(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Formats ")
	if !ok || !strings.Contains(body, "YYYY-MM-DDTHH:mm") {
		t.Fatalf("expected formats topic, got ok=%v", ok)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic to be missing")
	}
}

func TestRender_NoTTY(t *testing.T) {
	t.Parallel()

	body, _ := Get("placement")
	out, err := Render(body, 60, "notty")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Popover placement") {
		t.Fatalf("expected heading in rendered output, got %q", out)
	}
}
