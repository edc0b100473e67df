package sim

import "math"

// Params fixes the geometry and launch speed of a simulation.
type Params struct {
	Cols        int     // Grid columns
	Rows        int     // Grid rows
	TileSize    float64 // Edge length of a tile in pixels
	LaunchSpeed float64 // Horizontal launch speed in pixels per tick
	Gravity     float64 // Gravity the trajectory solver aims with, pixels per tick²
}

// Simulation owns the grid and the set of in-flight projectiles.
// All operations run to completion synchronously; it is not safe for
// concurrent use.
type Simulation struct {
	params      Params
	grid        *Grid
	projectiles []Projectile
	nextID      int
	tick        uint64
}

// New creates a simulation with an empty grid and no projectiles.
func New(p Params) *Simulation {
	return &Simulation{
		params: p,
		grid:   NewGrid(p.Cols, p.Rows),
		nextID: 1,
	}
}

// Reset empties the grid and discards every projectile.
func (s *Simulation) Reset() {
	s.grid.Reset()
	s.projectiles = nil
	s.nextID = 1
	s.tick = 0
}

// Params returns the simulation parameters.
func (s *Simulation) Params() Params {
	return s.params
}

// SetLaunchSpeed changes the horizontal speed used by subsequent launches.
// Non-positive speeds are ignored.
func (s *Simulation) SetLaunchSpeed(speed float64) {
	if speed > 0 {
		s.params.LaunchSpeed = speed
	}
}

// Grid returns the simulation grid.
func (s *Simulation) Grid() *Grid {
	return s.grid
}

// Bounds returns the play-field edges in pixels.
func (s *Simulation) Bounds() Bounds {
	t := s.params.TileSize
	return Bounds{
		Top:   0,
		Right: float64(s.params.Cols) * t,
		Floor: float64(s.params.Rows) * t,
		Tile:  t,
	}
}

// Width returns the play-field width in pixels.
func (s *Simulation) Width() float64 {
	return float64(s.params.Cols) * s.params.TileSize
}

// Height returns the play-field height in pixels.
func (s *Simulation) Height() float64 {
	return float64(s.params.Rows) * s.params.TileSize
}

// ColumnAt returns the grid column under a projectile whose left edge is at x.
// The result is clamped to the grid.
func (s *Simulation) ColumnAt(x float64) int {
	t := s.params.TileSize
	col := int(math.Floor((x + t/2) / t))
	return max(0, min(s.params.Cols-1, col))
}

// Surface returns the y-coordinate a falling projectile rests on in a column:
// the top of the column's stack, or the floor when the column is empty.
func (s *Simulation) Surface(col int) float64 {
	return float64(s.params.Rows-s.grid.Height(col)) * s.params.TileSize
}

// tileBox returns the pixel box of a resident tile.
func (s *Simulation) tileBox(t Tile) Box {
	size := s.params.TileSize
	return Box{X: float64(t.Col) * size, Y: float64(t.Row) * size, W: size, H: size}
}

// Launch solves the trajectory from one point to another and adds the
// resulting projectile to the active set. The projectile's top-left corner
// starts at from. Tick should be driven with the same gravity as Params.Gravity
// for the projectile to pass through the target.
func (s *Simulation) Launch(from, target Point, value int) Projectile {
	vx, vy := Solve(from.X, from.Y, target.X, target.Y, s.params.LaunchSpeed, s.params.Gravity)
	p := Projectile{
		ID:    s.nextID,
		X:     from.X,
		Y:     from.Y,
		VX:    vx,
		VY:    vy,
		Value: value,
	}
	s.nextID++
	s.projectiles = append(s.projectiles, p)
	return p
}

// Insert drops a tile straight into a column and settles the grid.
// A full column is a no-op.
func (s *Simulation) Insert(col, value int) (Tile, bool) {
	t, ok := s.grid.Insert(col, value)
	s.grid.Settle()
	return t, ok
}

// Projectiles returns a copy of the in-flight projectiles.
func (s *Simulation) Projectiles() []Projectile {
	out := make([]Projectile, len(s.projectiles))
	copy(out, s.projectiles)
	return out
}

// InFlight returns the number of in-flight projectiles.
func (s *Simulation) InFlight() int {
	return len(s.projectiles)
}

// Tick advances every in-flight projectile by one step, lands the ones that
// touched the stack or the floor, and settles the grid. Landing is resolved
// for all projectiles before the grid is settled.
func (s *Simulation) Tick(gravity float64) []Event {
	s.tick++

	var events []Event
	bounds := s.Bounds()
	flying := make([]Projectile, 0, len(s.projectiles))

	for _, p := range s.projectiles {
		next, hitWall := Advance(p, gravity, bounds)
		if hitWall {
			events = append(events, Event{Kind: EventBounced, ProjectileID: next.ID, X: next.X, Y: next.Y})
		}

		landed, evs := s.resolve(&next)
		events = append(events, evs...)
		if !landed {
			flying = append(flying, next)
		}
	}

	s.projectiles = flying
	s.grid.Settle()

	return events
}

// resolve checks a projectile against the stack surface and the resident
// tiles. It lands the projectile or reflects it off a tile side. Only a
// projectile that crossed the stack top from above during this tick lands on
// it directly; one that is already below the top meets the stack side first.
func (s *Simulation) resolve(p *Projectile) (bool, []Event) {
	size := s.params.TileSize
	col := s.ColumnAt(p.X)
	surface := s.Surface(col)
	bottom := p.Y + size

	if p.VY >= 0 && bottom >= surface && bottom-p.VY <= surface {
		p.Y = surface - size
		return true, s.land(p, col)
	}

	box := p.Box(size)
	var side *Tile
	for _, t := range s.grid.Tiles() {
		switch Classify(box, s.tileBox(t)) {
		case ContactLanding:
			return true, s.land(p, t.Col)
		case ContactSide:
			if side == nil {
				hit := t
				side = &hit
			}
		}
	}

	if side == nil {
		// Past the floor, or through the stack within a single tick
		if p.VY >= 0 && bottom >= s.Bounds().Floor {
			p.Y = surface - size
			return true, s.land(p, col)
		}
		return false, nil
	}

	// Push out horizontally and reflect if moving into the tile
	tb := s.tileBox(*side)
	if p.X+size/2 < tb.X+size/2 {
		p.X = tb.X - size
		if p.VX > 0 {
			p.VX = -p.VX
		}
	} else {
		p.X = tb.Right()
		if p.VX < 0 {
			p.VX = -p.VX
		}
	}

	return false, []Event{{Kind: EventBounced, ProjectileID: p.ID, X: p.X, Y: p.Y}}
}

// land converts a projectile into a tile in the given column. A landing tile
// that matches the tile beneath it merges with it once.
func (s *Simulation) land(p *Projectile, col int) []Event {
	size := s.params.TileSize
	p.VX, p.VY = 0, 0
	p.X = float64(col) * size

	tile, ok := s.grid.Insert(col, p.Value)
	if !ok {
		return []Event{{
			Kind:         EventDropped,
			ProjectileID: p.ID,
			Tile:         Tile{Col: col, Row: -1, Value: p.Value},
			X:            p.X,
			Y:            p.Y,
		}}
	}

	p.Y = float64(tile.Row) * size
	events := []Event{{
		Kind:         EventLanded,
		ProjectileID: p.ID,
		Tile:         tile,
		X:            p.X,
		Y:            p.Y,
	}}

	if m, merged := s.mergeDown(tile); merged {
		events = append(events, mergeEvent(m))
	}

	return events
}

// mergeDown merges a freshly landed tile into an equal tile directly below it.
func (s *Simulation) mergeDown(t Tile) (Merge, bool) {
	below, ok := s.grid.At(t.Col, t.Row+1).Tile()
	if !ok || below.Value != t.Value {
		return Merge{}, false
	}

	s.grid.clear(t.Col, t.Row)
	s.grid.put(below.Col, below.Row, Tile{Value: t.Value * 2})
	result, _ := s.grid.At(below.Col, below.Row).Tile()

	return Merge{Sources: [2]Tile{t, below}, Result: result}, true
}

// Shift runs a merge pass in the given direction and settles the grid.
// Moved is also set when settling relocated a tile.
func (s *Simulation) Shift(dir Direction) ShiftResult {
	res := s.grid.Shift(dir)
	if s.grid.Settle() {
		res.Moved = true
	}
	return res
}

// CanShift returns true if a left or right shift would change the grid.
func (s *Simulation) CanShift() bool {
	if s.grid.HasHorizontalMerge() {
		return true
	}
	for _, dir := range []Direction{DirLeft, DirRight} {
		trial := s.grid.Clone()
		if trial.Shift(dir).Changed() {
			return true
		}
	}
	return false
}
