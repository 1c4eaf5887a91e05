package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tabatavox/internal/voice"
)

func TestRendererPrintsTimeChanges(t *testing.T) {
	var out bytes.Buffer
	renderer := New(&out, NewStyles(DefaultTheme))

	renderer.OnTimeChanged("work", 75)
	renderer.OnTimeChanged("work", 75)
	renderer.OnTimeChanged("rest", 9)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2 distinct updates", lines)
	}
	if !strings.Contains(lines[0], "WORK") || !strings.Contains(lines[0], "01:15") {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "REST") || !strings.Contains(lines[1], "00:09") {
		t.Fatalf("second line = %q", lines[1])
	}
}

func TestRendererSayFlattensMarkup(t *testing.T) {
	var out bytes.Buffer
	renderer := New(&out, NewStyles(DefaultTheme))

	err := renderer.Say(context.Background(), `<speak>three <break time="500ms"/> two <break time="500ms"/> one</speak>`, voice.ModeMarkup)
	if err != nil {
		t.Fatalf("Say() error: %v", err)
	}
	if !strings.Contains(out.String(), "three, two, one") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRendererSayHonorsCancel(t *testing.T) {
	var out bytes.Buffer
	renderer := New(&out, NewStyles(DefaultTheme))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := renderer.Say(ctx, "work", voice.ModePlain); err == nil {
		t.Fatal("Say() on canceled context should fail")
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRendererControls(t *testing.T) {
	renderer := New(&bytes.Buffer{}, NewStyles(DefaultTheme))
	if !renderer.Enabled() {
		t.Fatal("controls should start enabled")
	}
	renderer.OnDisableControls()
	if renderer.Enabled() {
		t.Fatal("controls should be disabled")
	}
	renderer.OnEnableControls()
	if !renderer.Enabled() {
		t.Fatal("controls should be re-enabled")
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := formatSeconds(600); got != "10:00" {
		t.Fatalf("formatSeconds(600) = %q", got)
	}
	if got := formatSeconds(-1); got != "00:00" {
		t.Fatalf("formatSeconds(-1) = %q", got)
	}
}
