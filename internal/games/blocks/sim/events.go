package sim

// EventKind identifies the type of a simulation event.
type EventKind int

const (
	EventLanded  EventKind = iota // A projectile became a grid tile
	EventMerged                   // Two tiles were replaced by one doubled tile
	EventDropped                  // A projectile landed on a full column and was discarded
	EventBounced                  // A projectile reflected off a wall or a tile side
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventLanded:
		return "landed"
	case EventMerged:
		return "merged"
	case EventDropped:
		return "dropped"
	case EventBounced:
		return "bounced"
	default:
		return "unknown"
	}
}

// Event records something that happened during a tick.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind         EventKind
	ProjectileID int     // Landed, Dropped, Bounced
	Tile         Tile    // Landed: the new tile. Dropped: column and value, Row -1
	X, Y         float64 // Landed, Dropped, Bounced: snapped pixel position
	Sources      [2]Tile // Merged: the consumed tiles
	Result       Tile    // Merged: the replacement tile
}

// mergeEvent converts a Merge into an Event.
func mergeEvent(m Merge) Event {
	return Event{
		Kind:    EventMerged,
		Sources: m.Sources,
		Result:  m.Result,
	}
}
