// Package core provides the platform-neutral types shared by games and the
// terminal front end: screen buffer, input frames and runtime config.
// It has no Bubble Tea dependency so game logic stays pure and testable.
package core

import "math"

// Point is a position in screen cells.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps a continuous playfield measured in pixels onto a block of
// screen cells. Each cell covers CellW by CellH field pixels.
type Viewport struct {
	Area  Rect    // Screen cells occupied by the field
	CellW float64 // Field pixels per column
	CellH float64 // Field pixels per row
}

// ToScreen converts a field position to the screen cell containing it.
func (v Viewport) ToScreen(fx, fy float64) (int, int) {
	x := v.Area.X + int(math.Floor(fx/v.CellW))
	y := v.Area.Y + int(math.Floor(fy/v.CellH))
	return x, y
}

// ToField converts a screen cell to the field position at its centre.
// ok is false when the cell lies outside the viewport.
func (v Viewport) ToField(x, y int) (fx, fy float64, ok bool) {
	if !v.Area.Contains(x, y) {
		return 0, 0, false
	}
	fx = (float64(x-v.Area.X) + 0.5) * v.CellW
	fy = (float64(y-v.Area.Y) + 0.5) * v.CellH
	return fx, fy, true
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
