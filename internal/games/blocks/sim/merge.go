package sim

// Merge records two tiles consumed by a merge and the tile that replaced them.
// Sources carry their positions before the move, Result its position after.
type Merge struct {
	Sources [2]Tile
	Result  Tile
}

// ShiftResult reports what a merge pass did.
type ShiftResult struct {
	Moved  bool    // Whether any tile changed cell
	Merges []Merge // Merges in line order, travel order within a line
	Score  int     // Sum of merged tile values
}

// Changed returns true if any tile moved or merged.
func (r ShiftResult) Changed() bool {
	return r.Moved || len(r.Merges) > 0
}

// cellRef is a grid coordinate.
type cellRef struct{ col, row int }

// lines returns every line of the grid for the given direction.
// Each line is ordered in travel order: index 0 is the edge tiles move toward.
func (g *Grid) lines(dir Direction) [][]cellRef {
	var out [][]cellRef
	switch dir {
	case DirLeft, DirRight:
		for row := range g.Rows {
			line := make([]cellRef, g.Cols)
			for i := range g.Cols {
				col := i
				if dir == DirRight {
					col = g.Cols - 1 - i
				}
				line[i] = cellRef{col, row}
			}
			out = append(out, line)
		}
	case DirUp, DirDown:
		for col := range g.Cols {
			line := make([]cellRef, g.Rows)
			for i := range g.Rows {
				row := i
				if dir == DirDown {
					row = g.Rows - 1 - i
				}
				line[i] = cellRef{col, row}
			}
			out = append(out, line)
		}
	}
	return out
}

// Shift performs one 2048-style merge pass in the given direction.
// Tiles are compacted toward the travel edge; equal neighbours merge once,
// in travel order, and a merged tile does not merge again in the same pass.
// The grid is not settled; Simulation.Shift settles afterwards.
func (g *Grid) Shift(dir Direction) ShiftResult {
	var result ShiftResult
	g.clearMergeFlags()
	defer g.clearMergeFlags()

	for _, line := range g.lines(dir) {
		moved, merges := g.shiftLine(line)
		if moved {
			result.Moved = true
		}
		for _, m := range merges {
			result.Score += m.Result.Value
		}
		result.Merges = append(result.Merges, merges...)
	}

	return result
}

// shiftLine compacts and merges a single line in place.
func (g *Grid) shiftLine(line []cellRef) (moved bool, merges []Merge) {
	// Extract occupied tiles in travel order
	tiles := make([]Tile, 0, len(line))
	for _, ref := range line {
		if t, ok := g.At(ref.col, ref.row).Tile(); ok {
			tiles = append(tiles, t)
		}
	}
	if len(tiles) == 0 {
		return false, nil
	}

	// Walk and merge. mergeAt maps packed index -> merge index.
	packed := make([]Tile, 0, len(tiles))
	mergeAt := make(map[int]int)
	for _, t := range tiles {
		n := len(packed)
		if n > 0 {
			prev := packed[n-1]
			if prev.Value == t.Value && !prev.merged && !t.merged {
				merged := Tile{Value: prev.Value * 2, merged: true}
				packed[n-1] = merged
				mergeAt[n-1] = len(merges)
				merges = append(merges, Merge{Sources: [2]Tile{prev, t}})
				continue
			}
		}
		packed = append(packed, t)
	}

	// Write back against the travel edge
	for i, ref := range line {
		if i >= len(packed) {
			g.clear(ref.col, ref.row)
			continue
		}
		t := packed[i]
		if mi, ok := mergeAt[i]; ok {
			t.Col, t.Row = ref.col, ref.row
			merges[mi].Result = Tile{Col: ref.col, Row: ref.row, Value: t.Value}
		} else if t.Col != ref.col || t.Row != ref.row {
			moved = true
		}
		g.put(ref.col, ref.row, t)
	}

	return moved, merges
}

// clearMergeFlags resets the per-pass guard on every tile.
func (g *Grid) clearMergeFlags() {
	for i, c := range g.cells {
		if t, ok := c.Tile(); ok && t.merged {
			t.merged = false
			g.cells[i] = Occupied(t)
		}
	}
}
