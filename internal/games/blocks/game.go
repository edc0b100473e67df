// Package blocks implements Block Drop: value tiles are launched along
// parabolic arcs onto a grid where they stack and merge 2048-style, and the
// whole board can be shifted left or right.
package blocks

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blocks/sim"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

// flashTicks is how long a "column full" warning stays on screen.
const flashTicks = 45

var (
	configMu sync.RWMutex
	gameCfg  = config.DefaultBlocksConfig()
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.BlocksConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	gameCfg = cfg
}

// CurrentConfig returns the configuration new games are created with.
func CurrentConfig() config.BlocksConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return gameCfg
}

// Game implements the block launcher game.
type Game struct {
	cfg  config.BlocksConfig
	diff *config.DifficultyManager
	sim  *sim.Simulation
	rng  *rand.Rand
	tick uint64

	score    int
	launches int
	merges   int
	next     int // Value of the next launched tile
	aim      int // Aimed column for keyboard launches

	// Screen layout
	screenW int
	screenH int
	layout  FieldLayout

	paused   bool
	gameOver bool
	tooSmall bool

	flash    int // Ticks left on the warning message
	flashMsg string
}

// New creates a game using the current package configuration.
func New() *Game {
	return NewWithConfig(CurrentConfig())
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.BlocksConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blocks"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Block Drop"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	field := g.cfg.Field
	g.sim = sim.New(sim.Params{
		Cols:        field.Cols(),
		Rows:        field.Rows(),
		TileSize:    float64(field.TileSize),
		LaunchSpeed: g.cfg.Physics.LaunchSpeed,
		Gravity:     g.cfg.Physics.Gravity,
	})
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	g.score = 0
	g.launches = 0
	g.merges = 0
	g.aim = field.Cols() / 2
	g.next = g.drawValue()

	g.paused = false
	g.gameOver = false
	g.flash = 0
	g.flashMsg = ""

	g.resize(cfg.ScreenW, cfg.ScreenH)
}

// resize recomputes the field layout for a new terminal size.
func (g *Game) resize(w, h int) {
	g.screenW = w
	g.screenH = h
	var ok bool
	g.layout, ok = Layout(w, h, g.cfg.Field.Cols(), g.cfg.Field.Rows(), float64(g.cfg.Field.TileSize))
	g.tooSmall = !ok
}

// drawValue picks the next tile value from the spawn table.
func (g *Game) drawValue() int {
	values := g.cfg.Spawn.Values
	if len(values) == 1 {
		return values[0]
	}
	chance := g.diff.FourChance(g.cfg.Spawn.FourChance, g.score, int(g.tick))
	if g.rng.Float64() < chance {
		return values[1+g.rng.Intn(len(values)-1)]
	}
	return values[0]
}

// launcherPoint resolves the configured launch anchor to field pixels.
func (g *Game) launcherPoint() sim.Point {
	return ResolveAnchor(g.cfg.Launcher, g.sim.Width(), g.sim.Height(), g.sim.Params().TileSize)
}

// ResolveAnchor converts a launcher anchor to the top-left corner of the
// launched tile. Negative coordinates count from the right or bottom edge.
func ResolveAnchor(a config.LauncherConfig, width, height, tile float64) sim.Point {
	x, y := a.X, a.Y
	if x < 0 {
		x += width
	}
	if y < 0 {
		y += height
	}
	return sim.Pt(core.ClampF(x, 0, width-tile), core.ClampF(y, 0, height-tile))
}

// Step advances the game by one tick. Input is applied before physics.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if g.flash > 0 {
		g.flash--
	}

	var events []core.Event

	cols := g.sim.Params().Cols
	if in.Has(core.ActionAimLeft) {
		g.aim = core.Clamp(g.aim-1, 0, cols-1)
	}
	if in.Has(core.ActionAimRight) {
		g.aim = core.Clamp(g.aim+1, 0, cols-1)
	}

	if in.Has(core.ActionLaunch) {
		events = append(events, g.launchAtColumn(g.aim)...)
	}
	for _, c := range in.Clicks {
		events = append(events, g.launchAtCell(c)...)
	}

	switch {
	case in.Has(core.ActionLeft):
		events = append(events, g.shift(sim.DirLeft)...)
	case in.Has(core.ActionRight):
		events = append(events, g.shift(sim.DirRight)...)
	}

	for _, e := range g.sim.Tick(g.cfg.Physics.Gravity) {
		events = append(events, g.apply(e)...)
	}

	g.checkGameOver()

	return core.StepResult{State: g.State(), Events: events}
}

// launchAtColumn aims at the empty slot on top of a column's stack.
func (g *Game) launchAtColumn(col int) []core.Event {
	grid := g.sim.Grid()
	if grid.ColumnFull(col) {
		g.warn(fmt.Sprintf("Column %d is full", col+1))
		return nil
	}
	size := g.sim.Params().TileSize
	target := sim.Pt(float64(col)*size, g.sim.Surface(col)-size)
	return g.launch(target)
}

// launchAtCell aims the tile's centre at a clicked screen cell.
func (g *Game) launchAtCell(c core.Point) []core.Event {
	fx, fy, ok := g.layout.View.ToField(c.X, c.Y)
	if !ok {
		return nil
	}
	size := g.sim.Params().TileSize
	g.aim = g.sim.ColumnAt(fx - size/2)
	return g.launch(sim.Pt(fx-size/2, fy-size/2))
}

func (g *Game) launch(target sim.Point) []core.Event {
	speed := g.diff.Speed(g.cfg.Physics.LaunchSpeed, g.score, int(g.tick))
	g.sim.SetLaunchSpeed(speed)

	p := g.sim.Launch(g.launcherPoint(), target, g.next)
	g.launches++
	g.next = g.drawValue()

	return []core.Event{{Kind: core.EventLaunch, Value: p.Value}}
}

func (g *Game) shift(dir sim.Direction) []core.Event {
	res := g.sim.Shift(dir)
	if !res.Changed() {
		return nil
	}

	g.score += res.Score
	g.merges += len(res.Merges)

	events := []core.Event{{Kind: core.EventShift, Value: res.Score}}
	for _, m := range res.Merges {
		events = append(events, core.Event{Kind: core.EventMerge, Value: m.Result.Value})
	}
	return events
}

// apply folds a simulation event into the score and translates it for the
// platform.
func (g *Game) apply(e sim.Event) []core.Event {
	switch e.Kind {
	case sim.EventLanded:
		return []core.Event{{Kind: core.EventLand, Value: e.Tile.Value}}
	case sim.EventMerged:
		g.score += e.Result.Value
		g.merges++
		return []core.Event{{Kind: core.EventMerge, Value: e.Result.Value}}
	case sim.EventDropped:
		g.warn(fmt.Sprintf("Column %d is full, %d lost", e.Tile.Col+1, e.Tile.Value))
		return []core.Event{{Kind: core.EventDrop, Value: e.Tile.Value}}
	case sim.EventBounced:
		return []core.Event{{Kind: core.EventBounce}}
	}
	return nil
}

func (g *Game) warn(msg string) {
	g.flash = flashTicks
	g.flashMsg = msg
}

// checkGameOver ends the game once nothing can be placed or shifted.
func (g *Game) checkGameOver() {
	if g.sim.InFlight() > 0 {
		return
	}
	if g.sim.Grid().Full() && !g.sim.CanShift() {
		g.gameOver = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// MaxTile returns the largest tile on the board.
func (g *Game) MaxTile() int {
	return g.sim.Grid().MaxValue()
}

// Stats returns the run counters used for run records.
func (g *Game) Stats() (launches, merges int) {
	return g.launches, g.merges
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}
