package sim

// Tile is a block resident in the grid.
type Tile struct {
	Col    int
	Row    int
	Value  int
	merged bool // Set when the tile was produced by a merge in the current pass
}

// Cell is either empty or holds exactly one tile.
type Cell struct {
	tile     Tile
	occupied bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell holding the given tile.
func Occupied(t Tile) Cell {
	return Cell{tile: t, occupied: true}
}

// Tile returns the tile held by the cell and whether the cell is occupied.
func (c Cell) Tile() (Tile, bool) {
	return c.tile, c.occupied
}

// IsEmpty returns true if the cell holds no tile.
func (c Cell) IsEmpty() bool {
	return !c.occupied
}

// Grid is a fixed-size board of cells.
// Cells are stored in row-major order: index = row*Cols + col.
// Row 0 is the top of the play field.
type Grid struct {
	Cols  int
	Rows  int
	cells []Cell
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(cols, rows int) *Grid {
	return &Grid{
		Cols:  cols,
		Rows:  rows,
		cells: make([]Cell, cols*rows),
	}
}

// index converts a column/row pair to a flat array index.
func (g *Grid) index(col, row int) int {
	return row*g.Cols + col
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At returns the cell at the given coordinate.
// Returns an empty cell if out of bounds.
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return Empty()
	}
	return g.cells[g.index(col, row)]
}

// put stores a tile at the given coordinate, updating its position fields.
func (g *Grid) put(col, row int, t Tile) {
	t.Col = col
	t.Row = row
	g.cells[g.index(col, row)] = Occupied(t)
}

// clear empties the cell at the given coordinate.
func (g *Grid) clear(col, row int) {
	g.cells[g.index(col, row)] = Empty()
}

// Set places a tile with the given value at an exact cell, replacing any tile
// already there. It does not settle; callers that need a settled grid call
// Settle afterwards. Out-of-bounds coordinates are silently ignored.
func (g *Grid) Set(col, row, value int) {
	if !g.InBounds(col, row) {
		return
	}
	g.put(col, row, Tile{Value: value})
}

// Insert drops a new tile into the given column. The tile comes to rest in the
// lowest empty cell, which is what insertion followed by Settle produces.
// A full or out-of-range column is a no-op and returns false.
func (g *Grid) Insert(col, value int) (Tile, bool) {
	if col < 0 || col >= g.Cols {
		return Tile{}, false
	}
	row := g.LowestEmpty(col)
	if row < 0 {
		return Tile{}, false
	}
	g.put(col, row, Tile{Value: value})
	t, _ := g.At(col, row).Tile()
	return t, true
}

// LowestEmpty returns the lowest empty row in a settled column, or -1 if the
// column is full.
func (g *Grid) LowestEmpty(col int) int {
	for row := g.Rows - 1; row >= 0; row-- {
		if g.At(col, row).IsEmpty() {
			return row
		}
	}
	return -1
}

// Height returns the number of tiles in a column.
func (g *Grid) Height(col int) int {
	n := 0
	for row := range g.Rows {
		if !g.At(col, row).IsEmpty() {
			n++
		}
	}
	return n
}

// ColumnFull returns true if the column has no empty cell.
func (g *Grid) ColumnFull(col int) bool {
	return g.Height(col) >= g.Rows
}

// Settle compacts every column against the floor, preserving the top-to-bottom
// order of tiles. Returns true if any tile changed row.
func (g *Grid) Settle() bool {
	moved := false
	for col := range g.Cols {
		// Collect top to bottom
		stack := make([]Tile, 0, g.Rows)
		for row := range g.Rows {
			if t, ok := g.At(col, row).Tile(); ok {
				stack = append(stack, t)
			}
		}

		// Re-place so the last collected tile ends in the bottom row
		top := g.Rows - len(stack)
		for row := range g.Rows {
			if row < top {
				g.clear(col, row)
				continue
			}
			t := stack[row-top]
			if t.Row != row {
				moved = true
			}
			g.put(col, row, t)
		}
	}
	return moved
}

// IsSettled returns true if no empty cell has an occupied cell below it.
func (g *Grid) IsSettled() bool {
	for col := range g.Cols {
		seenEmpty := false
		for row := g.Rows - 1; row >= 0; row-- {
			empty := g.At(col, row).IsEmpty()
			if empty {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}

// Tiles returns all resident tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, len(g.cells))
	for _, c := range g.cells {
		if t, ok := c.Tile(); ok {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Count returns the number of resident tiles.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Full returns true if every cell is occupied.
func (g *Grid) Full() bool {
	return g.Count() == len(g.cells)
}

// MaxValue returns the highest tile value on the grid, or 0 when empty.
func (g *Grid) MaxValue() int {
	best := 0
	for _, c := range g.cells {
		if t, ok := c.Tile(); ok && t.Value > best {
			best = t.Value
		}
	}
	return best
}

// HasHorizontalMerge returns true if any two horizontally adjacent tiles share
// a value, i.e. a left or right shift could merge something.
func (g *Grid) HasHorizontalMerge() bool {
	for row := range g.Rows {
		for col := 0; col < g.Cols-1; col++ {
			a, okA := g.At(col, row).Tile()
			b, okB := g.At(col+1, row).Tile()
			if okA && okB && a.Value == b.Value {
				return true
			}
		}
	}
	return false
}

// Values returns the grid as a [row][col] matrix of values, 0 for empty cells.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.Rows)
	for row := range g.Rows {
		out[row] = make([]int, g.Cols)
		for col := range g.Cols {
			if t, ok := g.At(col, row).Tile(); ok {
				out[row][col] = t.Value
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Cols:  g.Cols,
		Rows:  g.Rows,
		cells: make([]Cell, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Empty()
	}
}
