package blocks

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultBlocksConfig())
	g.Reset(testRuntime())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps the game until nothing is in flight.
func settle(t *testing.T, g *Game) []core.Event {
	t.Helper()
	var events []core.Event
	for range 1000 {
		if g.sim.InFlight() == 0 {
			return events
		}
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	t.Fatal("projectiles still in flight after 1000 ticks")
	return nil
}

func hasEvent(events []core.Event, kind core.EventKind, value int) bool {
	for _, e := range events {
		if e.Kind == kind && e.Value == value {
			return true
		}
	}
	return false
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%40 == 0:
			inputs[i].Set(core.ActionLaunch)
		case i%40 == 10:
			inputs[i].Set(core.ActionAimLeft)
		case i%90 == 30:
			inputs[i].Set(core.ActionLeft)
		case i%130 == 50:
			inputs[i].Set(core.ActionRight)
		case i%70 == 20:
			inputs[i].Click(20+i%40, 12)
		}
	}

	run := func() Snapshot {
		g := NewWithConfig(config.DefaultBlocksConfig())
		g.Reset(testRuntime())
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.Launches == 0 {
		t.Error("input sequence should have launched tiles")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionLaunch))
	settle(t, g)
	g.Reset(testRuntime())

	snap := g.Snapshot()
	if snap.Score != 0 || snap.Launches != 0 || snap.Tick != 0 {
		t.Errorf("Reset should clear counters, got %+v", snap)
	}
	if len(snap.Sim.Tiles) != 0 || len(snap.Sim.Projectiles) != 0 {
		t.Error("Reset should empty the field")
	}
	if snap.Aim != 7 {
		t.Errorf("aim = %d, expected middle column 7", snap.Aim)
	}
	if snap.Next != 2 && snap.Next != 4 {
		t.Errorf("next = %d, expected 2 or 4", snap.Next)
	}
}

func TestLaunchLandsInAimedColumn(t *testing.T) {
	g := newTestGame(t)
	value := g.next

	res := g.Step(frame(core.ActionLaunch))
	if !hasEvent(res.Events, core.EventLaunch, value) {
		t.Fatalf("expected a launch event for %d, got %v", value, res.Events)
	}
	events := settle(t, g)

	if !hasEvent(events, core.EventLand, value) {
		t.Errorf("expected a land event, got %v", events)
	}
	if got := g.Snapshot().Sim.Value(7, 19); got != value {
		t.Errorf("bottom of aimed column = %d, expected %d", got, value)
	}
}

func TestAimClamps(t *testing.T) {
	g := newTestGame(t)

	for range 20 {
		g.Step(frame(core.ActionAimLeft))
	}
	if g.aim != 0 {
		t.Errorf("aim = %d, expected 0", g.aim)
	}
	for range 20 {
		g.Step(frame(core.ActionAimRight))
	}
	if g.aim != 14 {
		t.Errorf("aim = %d, expected 14", g.aim)
	}
}

func TestLaunchMergesWithStack(t *testing.T) {
	g := newTestGame(t)
	g.sim.Insert(7, 2)
	g.next = 2

	g.Step(frame(core.ActionLaunch))
	events := settle(t, g)

	if !hasEvent(events, core.EventMerge, 4) {
		t.Errorf("expected a merge into 4, got %v", events)
	}
	if g.score != 4 {
		t.Errorf("score = %d, expected 4", g.score)
	}
	if g.MaxTile() != 4 {
		t.Errorf("max tile = %d, expected 4", g.MaxTile())
	}
	if _, merges := g.Stats(); merges != 1 {
		t.Errorf("merges = %d, expected 1", merges)
	}
}

func TestLaunchIntoFullColumn(t *testing.T) {
	g := newTestGame(t)
	for row := range 20 {
		g.sim.Insert(7, 2<<(row%2))
	}

	res := g.Step(frame(core.ActionLaunch))

	if len(res.Events) != 0 {
		t.Errorf("full column should not launch, got %v", res.Events)
	}
	if g.sim.InFlight() != 0 || g.launches != 0 {
		t.Error("nothing should be in flight")
	}
	if g.flash == 0 || !strings.Contains(g.flashMsg, "full") {
		t.Errorf("expected a full column warning, got %q", g.flashMsg)
	}
}

func TestShiftScores(t *testing.T) {
	g := newTestGame(t)
	g.sim.Insert(0, 2)
	g.sim.Insert(1, 2)

	res := g.Step(frame(core.ActionLeft))

	if !hasEvent(res.Events, core.EventShift, 4) || !hasEvent(res.Events, core.EventMerge, 4) {
		t.Errorf("expected shift and merge events, got %v", res.Events)
	}
	if res.State.Score != 4 {
		t.Errorf("score = %d, expected 4", res.State.Score)
	}
	if g.Snapshot().Sim.Value(0, 19) != 4 {
		t.Error("merged tile should sit at the left edge")
	}

	// A shift that changes nothing reports nothing
	res = g.Step(frame(core.ActionLeft))
	if len(res.Events) != 0 {
		t.Errorf("no-op shift should not emit events, got %v", res.Events)
	}
}

func TestClickLaunch(t *testing.T) {
	g := newTestGame(t)
	area := g.layout.View.Area

	in := core.NewInputFrame()
	in.Click(area.X+3*CellsPerTile+1, area.Y+19)
	res := g.Step(in)

	if len(res.Events) == 0 || res.Events[0].Kind != core.EventLaunch {
		t.Fatalf("click inside the field should launch, got %v", res.Events)
	}
	if g.aim != 3 {
		t.Errorf("click should move the aim to column 3, got %d", g.aim)
	}
	settle(t, g)
	if g.Snapshot().Sim.Value(3, 19) == 0 {
		t.Error("clicked tile should land in column 3")
	}

	outside := core.NewInputFrame()
	outside.Click(0, 0)
	if res := g.Step(outside); len(res.Events) != 0 {
		t.Errorf("click outside the field should be ignored, got %v", res.Events)
	}
}

func TestGameOver(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Field.Width = 80
	cfg.Field.Height = 40
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	g.sim.Insert(0, 2)
	g.sim.Insert(1, 4)
	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver {
		t.Error("a full board with no merges should end the game")
	}

	// Input is ignored after game over
	res = g.Step(frame(core.ActionLeft))
	if len(res.Events) != 0 {
		t.Error("game over should ignore input")
	}
}

func TestFullBoardWithMergeIsNotOver(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Field.Width = 80
	cfg.Field.Height = 40
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	g.sim.Insert(0, 4)
	g.sim.Insert(1, 4)
	if g.Step(core.NewInputFrame()).State.GameOver {
		t.Error("a horizontal merge is still available")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t)

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	if res := g.Step(frame(core.ActionLaunch)); len(res.Events) != 0 {
		t.Error("paused game should ignore launches")
	}
	if res := g.Step(frame(core.ActionPause)); res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := NewWithConfig(config.DefaultBlocksConfig())
	cfg := testRuntime()
	cfg.ScreenW = 40
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("too small window should report paused")
	}
	if res := g.Step(frame(core.ActionLaunch)); len(res.Events) != 0 {
		t.Error("too small window should ignore input")
	}

	screen := core.NewScreen(40, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too small message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize to a big enough window should resume")
	}
}

func TestResolveAnchor(t *testing.T) {
	tests := []struct {
		name   string
		anchor config.LauncherConfig
		x, y   float64
	}{
		{"top left", config.LauncherConfig{X: 0, Y: 0}, 0, 0},
		{"bottom centre", config.LauncherConfig{X: 280, Y: -40}, 280, 760},
		{"right edge", config.LauncherConfig{X: -40, Y: 100}, 560, 100},
		{"clamped", config.LauncherConfig{X: 1000, Y: -2000}, 560, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := ResolveAnchor(tc.anchor, 600, 800, 40)
			if p.X != tc.x || p.Y != tc.y {
				t.Errorf("ResolveAnchor() = (%v, %v), expected (%v, %v)", p.X, p.Y, tc.x, tc.y)
			}
		})
	}
}
