package blocks

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blocks/sim"
)

// CellsPerTile is the width of one tile in screen cells. A tile is one
// screen row tall.
const CellsPerTile = 4

// FieldLayout places the playfield on the terminal.
type FieldLayout struct {
	Box     core.Rect     // Border drawn around the field
	View    core.Viewport // Field pixels to screen cells
	HUDY    int           // Row of the score line
	FooterY int           // Row of the hint line
}

// Layout centres a cols x rows field on a screen of the given size, with a
// HUD line above and a hint line below. ok is false if it does not fit.
func Layout(screenW, screenH, cols, rows int, tile float64) (layout FieldLayout, ok bool) {
	boxW := cols*CellsPerTile + 2
	boxH := rows + 2
	if screenW < boxW || screenH < boxH+2 {
		return FieldLayout{}, false
	}

	top := (screenH - boxH - 2) / 2
	boxX := (screenW - boxW) / 2

	return FieldLayout{
		Box: core.NewRect(boxX, top+1, boxW, boxH),
		View: core.Viewport{
			Area:  core.NewRect(boxX+1, top+2, cols*CellsPerTile, rows),
			CellW: tile / CellsPerTile,
			CellH: tile,
		},
		HUDY:    top,
		FooterY: top + 1 + boxH,
	}, true
}

// MinScreen returns the smallest terminal that fits a cols x rows field.
func MinScreen(cols, rows int) (w, h int) {
	return cols*CellsPerTile + 2, rows + 4
}

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightCyan
	case 4096:
		return core.ColorMagenta
	default:
		return core.ColorBrightMagenta
	}
}

// TileLabel renders a tile value into exactly CellsPerTile runes.
func TileLabel(value int) string {
	s := strconv.Itoa(value)
	if value >= 1000 {
		s = strconv.Itoa(value/1024) + "k"
	}
	if len(s) >= CellsPerTile {
		return s[:CellsPerTile]
	}
	return fmt.Sprintf("▏%*s", CellsPerTile-1, s)
}

// DrawTile draws a tile label at (x, y), clipped to the area.
func DrawTile(dst *core.Screen, area core.Rect, x, y, value int) {
	color := TileColor(value)
	i := 0
	for _, r := range TileLabel(value) {
		if area.Contains(x+i, y) {
			dst.SetColor(x+i, y, r, color)
		}
		i++
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.sim.Snapshot()
	area := g.layout.View.Area

	g.renderHUD(dst)
	dst.DrawBox(g.layout.Box, core.ColorGray)
	g.renderAim(dst)

	for _, t := range snap.Tiles {
		DrawTile(dst, area, area.X+t.Col*CellsPerTile, area.Y+t.Row, t.Value)
	}

	g.renderLauncher(dst)
	for _, p := range snap.Projectiles {
		g.renderProjectile(dst, p)
	}

	g.renderFooter(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := MinScreen(g.cfg.Field.Cols(), g.cfg.Field.Rows())
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

func (g *Game) renderHUD(dst *core.Screen) {
	box := g.layout.Box
	y := g.layout.HUDY

	dst.DrawText(box.X, y, fmt.Sprintf("Score: %d", g.score))

	title := "BLOCK DROP"
	dst.DrawTextColor(box.X+(box.W-len(title))/2, y, title, core.ColorBrightCyan)

	x := box.Right() - CellsPerTile
	dst.DrawText(x-len("Next:"), y, "Next:")
	DrawTile(dst, core.NewRect(x, y, CellsPerTile, 1), x, y, g.next)
}

// renderAim marks the aimed column on the top border and shows where the
// next keyboard launch will land.
func (g *Game) renderAim(dst *core.Screen) {
	area := g.layout.View.Area
	x := area.X + g.aim*CellsPerTile
	dst.DrawTextColor(x+1, g.layout.Box.Y, "▼▼", core.ColorYellow)

	row := g.sim.Grid().LowestEmpty(g.aim)
	if row < 0 {
		return
	}
	dst.DrawTextColor(x, area.Y+row, "····", core.ColorGray)
}

func (g *Game) renderLauncher(dst *core.Screen) {
	p := g.launcherPoint()
	half := g.sim.Params().TileSize / 2
	x, y := g.layout.View.ToScreen(p.X+half, p.Y+half)
	if g.layout.View.Area.Contains(x, y) {
		dst.SetColor(x, y, '◆', core.ColorMagenta)
	}
}

func (g *Game) renderProjectile(dst *core.Screen, p sim.Projectile) {
	half := g.sim.Params().TileSize / 2
	x, y := g.layout.View.ToScreen(p.X, p.Y+half)
	DrawTile(dst, g.layout.View.Area, x, y, p.Value)
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.layout.FooterY
	if g.flash > 0 {
		dst.DrawTextCenteredColor(y, g.flashMsg, core.ColorBrightRed)
		return
	}
	dst.DrawTextCenteredColor(y, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	box := g.layout.Box
	cx := box.X + box.W/2
	cy := box.Y + box.H/2

	switch {
	case g.paused:
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case g.gameOver:
		drawOverlay(dst, cx, cy, "GAME OVER",
			fmt.Sprintf("Score: %d  Max tile: %d", g.score, g.MaxTile()),
			"R: restart  B: menu")
	}
}

// drawOverlay draws a boxed message centred on (cx, cy).
func drawOverlay(dst *core.Screen, cx, cy int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(cx-(maxLen+4)/2, cy-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawTextColor(cx-len([]rune(line))/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "A/D aim  Space launch  Click throw  ←/→ shift  P pause  Q quit"
}
