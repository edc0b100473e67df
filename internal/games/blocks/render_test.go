package blocks

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vovakirdan/blockdrop/internal/core"
)

func TestTileLabel(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{2, "▏  2"},
		{64, "▏ 64"},
		{512, "▏512"},
		{1024, "▏ 1k"},
		{16384, "▏16k"},
	}

	for _, tc := range tests {
		got := TileLabel(tc.value)
		if got != tc.expected {
			t.Errorf("TileLabel(%d) = %q, expected %q", tc.value, got, tc.expected)
		}
		if n := utf8.RuneCountInString(got); n != CellsPerTile {
			t.Errorf("TileLabel(%d) is %d runes wide", tc.value, n)
		}
	}
}

func TestLayoutFitsDefaultTerminal(t *testing.T) {
	layout, ok := Layout(80, 24, 15, 20, 40)
	if !ok {
		t.Fatal("15x20 field should fit 80x24")
	}

	if layout.View.Area.W != 60 || layout.View.Area.H != 20 {
		t.Errorf("area = %+v, expected 60x20", layout.View.Area)
	}
	if layout.HUDY < 0 || layout.FooterY >= 24 {
		t.Errorf("HUD row %d or footer row %d off screen", layout.HUDY, layout.FooterY)
	}
	if layout.Box.Y != layout.HUDY+1 || layout.Box.Bottom() != layout.FooterY {
		t.Errorf("box %+v should sit between HUD and footer", layout.Box)
	}

	// Bottom-right field pixel maps to the last cell of the area
	x, y := layout.View.ToScreen(599, 799)
	if x != layout.View.Area.Right()-1 || y != layout.View.Area.Bottom()-1 {
		t.Errorf("ToScreen(599, 799) = (%d, %d)", x, y)
	}

	if _, ok := Layout(61, 24, 15, 20, 40); ok {
		t.Error("61 columns should not fit")
	}
	if _, ok := Layout(80, 23, 15, 20, 40); ok {
		t.Error("23 rows should not fit")
	}
}

func TestMinScreen(t *testing.T) {
	w, h := MinScreen(15, 20)
	if _, ok := Layout(w, h, 15, 20, 40); !ok {
		t.Errorf("MinScreen() = %dx%d does not fit", w, h)
	}
	if _, ok := Layout(w-1, h, 15, 20, 40); ok {
		t.Error("MinScreen() is not minimal in width")
	}
}

func TestRenderShowsTilesAndHUD(t *testing.T) {
	g := newTestGame(t)
	g.sim.Insert(2, 8)
	g.score = 120

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(g.layout.HUDY)
	if !strings.Contains(hud, "Score: 120") || !strings.Contains(hud, "BLOCK DROP") {
		t.Errorf("HUD row = %q", hud)
	}

	area := g.layout.View.Area
	bottom := screen.Row(area.Y + 19)
	col := []rune(bottom)[area.X+2*CellsPerTile : area.X+3*CellsPerTile]
	if string(col) != TileLabel(8) {
		t.Errorf("tile cell = %q, expected %q", string(col), TileLabel(8))
	}
	if got := screen.GetCell(area.X+2*CellsPerTile+3, area.Y+19).Color; got != TileColor(8) {
		t.Errorf("tile color = %v, expected %v", got, TileColor(8))
	}

	top := screen.Row(g.layout.Box.Y)
	if !strings.Contains(top, "▼▼") {
		t.Error("aim marker should be on the top border")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.paused = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.paused = false
	g.gameOver = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderFlashMessage(t *testing.T) {
	g := newTestGame(t)
	g.warn("Column 3 is full")

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(g.layout.FooterY), "Column 3 is full") {
		t.Error("footer should show the warning")
	}
}
