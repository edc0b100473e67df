package launcher

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
)

func newTestGame() *Game {
	g := NewWithConfig(config.DefaultBlocksConfig())
	g.Reset(core.DefaultConfig())
	return g
}

func TestLaunchFromBottomCentre(t *testing.T) {
	g := newTestGame()

	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)
	res := g.Step(in)

	if len(res.Events) != 1 || res.Events[0].Kind != core.EventLaunch {
		t.Fatalf("expected one launch event, got %v", res.Events)
	}
	if g.InFlight() != 1 {
		t.Fatalf("InFlight() = %d, expected 1", g.InFlight())
	}

	b := g.blocks[0]
	if b.X != 280 {
		t.Errorf("x = %v, expected 280", b.X)
	}
	// One tick of integration: vy = -15 + 0.6, y = 760 + vy
	if math.Abs(b.VY+14.4) > 1e-9 || math.Abs(b.Y-745.6) > 1e-9 {
		t.Errorf("after one tick got y=%v vy=%v", b.Y, b.VY)
	}
	if b.VX != 0 {
		t.Errorf("classic blocks move straight up, vx = %v", b.VX)
	}
}

func TestBlocksFallOffAndAreRemoved(t *testing.T) {
	g := newTestGame()

	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)
	g.Step(in)

	dropped := false
	for range 200 {
		res := g.Step(core.NewInputFrame())
		for _, e := range res.Events {
			if e.Kind == core.EventDrop {
				dropped = true
			}
		}
		if g.InFlight() == 0 {
			break
		}
	}

	if g.InFlight() != 0 {
		t.Error("block should have fallen off the field")
	}
	if !dropped {
		t.Error("expected a drop event when the block left the field")
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1 launch", g.State().Score)
	}
}

func TestClicksLaunch(t *testing.T) {
	g := newTestGame()

	in := core.NewInputFrame()
	in.Click(1, 1)
	in.Click(5, 5)
	g.Step(in)

	if g.InFlight() != 2 || g.State().Score != 2 {
		t.Errorf("each click should launch: in flight %d, score %d", g.InFlight(), g.State().Score)
	}
}

func TestReset(t *testing.T) {
	g := newTestGame()

	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)
	g.Step(in)
	g.Reset(core.DefaultConfig())

	if g.InFlight() != 0 || g.State().Score != 0 {
		t.Error("Reset should clear blocks and score")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame()
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Launched: 0") {
		t.Error("HUD should show the launch count")
	}
	if !strings.Contains(out, "◆") {
		t.Error("idle launcher should be drawn")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)
	g.Step(in)
	g.Render(screen)
	if !strings.Contains(screen.String(), "████") {
		t.Error("launched block should be drawn")
	}
}
