package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockdrop/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.DrawText(0, 0, "plain text")
	s.DrawTextColor(2, 1, "▏  8", core.ColorYellow)
	s.DrawTextColor(8, 1, "x", core.ColorBrightWhite)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "plain text") {
		t.Errorf("default colored row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "▏  8") || !strings.Contains(lines[1], "x") {
		t.Errorf("colored row lost its text: %q", lines[1])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(200)).Render("abc")
	if got != "abc" {
		t.Errorf("unknown color should render unstyled, got %q", got)
	}
}
