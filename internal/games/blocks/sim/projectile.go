package sim

// Projectile is an in-flight block that has not yet landed on the grid.
type Projectile struct {
	ID     int
	X, Y   float64 // Top-left corner in play-field pixels
	VX, VY float64 // Velocity per tick
	Value  int
}

// Box returns the projectile's bounding box for a given tile edge length.
func (p Projectile) Box(tile float64) Box {
	return Box{X: p.X, Y: p.Y, W: tile, H: tile}
}

// Integrate applies one Euler step under gravity with no boundary handling.
func (p Projectile) Integrate(gravity float64) Projectile {
	p.VY += gravity
	p.X += p.VX
	p.Y += p.VY
	return p
}

// Advance integrates one tick and applies the wall policy: the ceiling and the
// right wall reflect the projectile, the left edge and the floor are left to the
// landing check. The second return value reports whether a wall was hit.
func Advance(p Projectile, gravity float64, b Bounds) (Projectile, bool) {
	p = p.Integrate(gravity)
	bounced := false

	if p.Y < b.Top {
		p.Y = b.Top
		p.VY = -p.VY
		bounced = true
	}

	if p.X+b.Tile > b.Right {
		p.X = b.Right - b.Tile
		p.VX = -p.VX
		bounced = true
	}

	return p, bounced
}

// Contact classifies how a projectile touches a resident tile.
type Contact int

const (
	ContactNone    Contact = iota
	ContactLanding         // Vertical overlap dominates: the projectile falls onto the tile
	ContactSide            // Horizontal overlap dominates: the projectile glances off its side
)

// String returns the string representation of a contact.
func (c Contact) String() string {
	switch c {
	case ContactNone:
		return "None"
	case ContactLanding:
		return "Landing"
	case ContactSide:
		return "Side"
	default:
		return "Unknown"
	}
}

// Classify compares the overlap extents of a projectile and a tile.
// Equal extents count as a side contact.
func Classify(proj, tile Box) Contact {
	ox, oy := proj.Overlap(tile)
	if ox <= 0 || oy <= 0 {
		return ContactNone
	}
	if oy > ox {
		return ContactLanding
	}
	return ContactSide
}
