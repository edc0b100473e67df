package sim

// Snapshot is a read-only copy of the simulation state for rendering and
// determinism checks. Mutating it does not affect the simulation.
type Snapshot struct {
	Tick        uint64
	Cols        int
	Rows        int
	TileSize    float64
	Grid        [][]int // [row][col] tile values, 0 for empty
	Tiles       []Tile
	Projectiles []Projectile
}

// Snapshot returns a deep copy of the grid and the in-flight projectiles.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:        s.tick,
		Cols:        s.params.Cols,
		Rows:        s.params.Rows,
		TileSize:    s.params.TileSize,
		Grid:        s.grid.Values(),
		Tiles:       s.grid.Tiles(),
		Projectiles: s.Projectiles(),
	}
}

// Value returns the tile value at the given cell, or 0 when empty or out of range.
func (snap Snapshot) Value(col, row int) int {
	if row < 0 || row >= len(snap.Grid) || col < 0 || col >= len(snap.Grid[row]) {
		return 0
	}
	return snap.Grid[row][col]
}
