// Package sim provides the block launcher simulation: trajectory solving,
// projectile integration, and the merge grid the projectiles land on.
// This package is UI-agnostic and deterministic.
package sim

// Direction represents a merge pass direction.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Horizontal returns true for directions that operate on rows.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Point is a position in play-field pixels.
// X grows to the right, Y grows downward.
type Point struct {
	X, Y float64
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Box is an axis-aligned rectangle in play-field pixels.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Overlap returns the horizontal and vertical overlap extents of two boxes.
// Either value is <= 0 when the boxes do not intersect on that axis.
func (b Box) Overlap(other Box) (ox, oy float64) {
	ox = min(b.Right(), other.Right()) - max(b.X, other.X)
	oy = min(b.Bottom(), other.Bottom()) - max(b.Y, other.Y)
	return ox, oy
}

// Bounds describes the play field edges used by the integrator.
type Bounds struct {
	Top   float64 // Ceiling; projectiles bounce off it
	Right float64 // Right wall; projectiles bounce off it
	Floor float64 // Landing line for the lower edge of a projectile
	Tile  float64 // Edge length of a tile and of a projectile
}
