package blocks

import (
	"math"

	"github.com/vovakirdan/blockdrop/internal/games/blocks/sim"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Launches int
	Merges   int
	Next     int
	Aim      int
	MaxTile  int
	Paused   bool
	GameOver bool
	Sim      sim.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Launches: g.launches,
		Merges:   g.merges,
		Next:     g.next,
		Aim:      g.aim,
		MaxTile:  g.MaxTile(),
		Paused:   g.paused,
		GameOver: g.gameOver,
		Sim:      g.sim.Snapshot(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Launches) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Merges)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Next)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Aim)      //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}

	for _, row := range snap.Sim.Grid {
		for _, v := range row {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}

	for _, p := range snap.Sim.Projectiles {
		h = h*31 + uint64(p.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + math.Float64bits(p.Y)
		h = h*31 + math.Float64bits(p.VX)
		h = h*31 + math.Float64bits(p.VY)
		h = h*31 + uint64(p.Value) //#nosec G115 -- hash computation
	}

	return h
}
