package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies a gameplay event surfaced to the platform.
type EventKind string

const (
	EventLaunch  EventKind = "launch"
	EventLand    EventKind = "land"
	EventMerge   EventKind = "merge"
	EventDrop    EventKind = "drop"
	EventBounce  EventKind = "bounce"
	EventShift   EventKind = "shift"
	EventRestart EventKind = "restart"
)

// Event is a gameplay occurrence the platform may log or count.
type Event struct {
	Kind  EventKind
	Value int // Tile value involved, or points scored for a shift
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
