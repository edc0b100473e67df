// Package launcher implements the classic block launcher: every click or
// space press throws a block straight up from the bottom centre, and blocks
// that fall back off the field are removed.
package launcher

import (
	"fmt"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blocks"
	"github.com/vovakirdan/blockdrop/internal/games/blocks/sim"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

// Game implements the classic launcher.
type Game struct {
	cfg    config.BlocksConfig
	blocks []sim.Projectile
	nextID int
	tick   uint64

	launches int
	peak     float64 // Highest point reached, in field pixels from the top

	screenW  int
	screenH  int
	layout   blocks.FieldLayout
	tooSmall bool
	paused   bool
}

// New creates a classic launcher using the current block configuration.
func New() *Game {
	return NewWithConfig(blocks.CurrentConfig())
}

// NewWithConfig creates a classic launcher with an explicit configuration.
func NewWithConfig(cfg config.BlocksConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register("launcher", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "launcher"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Block Launcher (classic)"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.blocks = g.blocks[:0]
	g.nextID = 0
	g.tick = 0
	g.launches = 0
	g.peak = float64(g.cfg.Field.Height)
	g.paused = false
	g.resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) resize(w, h int) {
	g.screenW = w
	g.screenH = h
	var ok bool
	g.layout, ok = blocks.Layout(w, h, g.cfg.Field.Cols(), g.cfg.Field.Rows(), float64(g.cfg.Field.TileSize))
	g.tooSmall = !ok
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}

// origin is the launch position: bottom centre of the field.
func (g *Game) origin() sim.Point {
	f := g.cfg.Field
	return sim.Pt(float64(f.Width/2-f.TileSize/2), float64(f.Height-f.TileSize))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	presses := len(in.Clicks)
	if in.Has(core.ActionLaunch) {
		presses++
	}
	for range presses {
		events = append(events, g.launch())
	}

	height := float64(g.cfg.Field.Height)
	kept := g.blocks[:0]
	for _, b := range g.blocks {
		b = b.Integrate(g.cfg.Physics.Gravity)
		g.peak = min(g.peak, b.Y)
		if b.Y >= height {
			events = append(events, core.Event{Kind: core.EventDrop})
			continue
		}
		kept = append(kept, b)
	}
	g.blocks = kept

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) launch() core.Event {
	o := g.origin()
	g.nextID++
	g.blocks = append(g.blocks, sim.Projectile{
		ID: g.nextID,
		X:  o.X,
		Y:  o.Y,
		VY: -g.cfg.Physics.ClassicLaunchSpeed,
	})
	g.launches++
	return core.Event{Kind: core.EventLaunch}
}

// InFlight returns the number of blocks on screen.
func (g *Game) InFlight() int {
	return len(g.blocks)
}

// State returns the current game state. The classic launcher never ends.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.launches,
		Paused: g.paused || g.tooSmall,
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		w, h := blocks.MinScreen(g.cfg.Field.Cols(), g.cfg.Field.Rows())
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
		return
	}

	box := g.layout.Box
	view := g.layout.View

	dst.DrawText(box.X, g.layout.HUDY, fmt.Sprintf("Launched: %d", g.launches))
	peak := fmt.Sprintf("Peak: %dpx", int(float64(g.cfg.Field.Height)-g.peak))
	dst.DrawText(box.Right()-len(peak), g.layout.HUDY, peak)
	dst.DrawBox(box, core.ColorGray)

	for _, b := range g.blocks {
		x, y := view.ToScreen(b.X, b.Y+float64(g.cfg.Field.TileSize)/2)
		for i := range blocks.CellsPerTile {
			if view.Area.Contains(x+i, y) {
				dst.SetColor(x+i, y, '█', core.ColorBlue)
			}
		}
	}

	o := g.origin()
	half := float64(g.cfg.Field.TileSize) / 2
	x, y := view.ToScreen(o.X+half, o.Y+half)
	if view.Area.Contains(x, y) && len(g.blocks) == 0 {
		dst.SetColor(x, y, '◆', core.ColorMagenta)
	}

	dst.DrawTextCenteredColor(g.layout.FooterY, g.Controls(), core.ColorGray)

	if g.paused {
		dst.DrawTextCenteredColor(box.Y+box.H/2, " PAUSED ", core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Click or Space to launch a block  P pause  Q quit"
}
