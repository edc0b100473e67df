package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/metrics"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

// copyFrame detaches a frame from the model, which clears it after each step.
func copyFrame(in core.InputFrame) core.InputFrame {
	out := core.NewInputFrame()
	for a, on := range in.Actions {
		out.Actions[a] = on
	}
	out.Clicks = append([]core.Point(nil), in.Clicks...)
	return out
}

// scriptedGame ends after a fixed number of steps and records its input.
type scriptedGame struct {
	steps    int
	endAfter int
	resets   int
	resized  [2]int
	last     core.InputFrame
	state    core.GameState
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = copyFrame(in)
	g.state.Score += 10
	if g.steps >= g.endAfter {
		g.state.GameOver = true
	}
	return core.StepResult{
		State:  g.state,
		Events: []core.Event{{Kind: core.EventMerge, Value: 4}},
	}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState { return g.state }
func (g *scriptedGame) MaxTile() int { return 64 }
func (g *scriptedGame) Stats() (int, int) { return 7, 3 }
func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func newTestModel(g *scriptedGame, svc Services) Model {
	m := NewModel(g, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()
	return m
}

func TestModelRecordsFinishedRunOnce(t *testing.T) {
	store := openTestStore(t)
	rec := metrics.New()
	g := &scriptedGame{endAfter: 3}
	m := newTestModel(g, Services{Store: store, Metrics: rec, Player: "alice"})

	for range 5 {
		m = step(t, m, TickMsg{})
	}

	runs, err := store.RecentRuns("scripted", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID == uuid.Nil || run.Player != "alice" || run.Score != 30 {
		t.Errorf("run = %+v", run)
	}
	if run.MaxTile != 64 || run.Launches != 7 || run.Merges != 3 {
		t.Errorf("run statistics = %+v", run)
	}

	best, err := store.HighScore("scripted")
	if err != nil || best != 30 {
		t.Errorf("HighScore() = %d, %v", best, err)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	store := openTestStore(t)
	g := &scriptedGame{endAfter: 1}
	m := newTestModel(g, Services{Store: store})

	m = step(t, m, TickMsg{})
	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("expected a restart, resets = %d", g.resets)
	}
	m = step(t, m, TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("second game should end")
	}

	runs, _ := store.RecentRuns("scripted", 10)
	if len(runs) != 2 {
		t.Errorf("each game should record a run, got %d", len(runs))
	}
}

func TestModelForwardsClicks(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := newTestModel(g, Services{})

	m = step(t, m, tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = step(t, m, TickMsg{})

	if len(g.last.Clicks) != 1 || g.last.Clicks[0] != (core.Point{X: 30, Y: 10}) {
		t.Errorf("game saw clicks %v", g.last.Clicks)
	}
	if !g.last.Has(core.ActionLaunch) {
		t.Error("game should see the launch action")
	}

	m = step(t, m, TickMsg{})
	if len(g.last.Clicks) != 0 || g.last.Has(core.ActionLaunch) {
		t.Error("input should be cleared after each tick")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := newTestModel(g, Services{})

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resized != [2]int{100, 40} {
		t.Errorf("game resized to %v", g.resized)
	}
	if g.resets != 1 {
		t.Error("a resizable game should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Error("screen buffer should follow the window")
	}
}

func TestModelBackOnlyWhenIdle(t *testing.T) {
	g := &scriptedGame{endAfter: 2}
	m := newTestModel(g, Services{})

	m = step(t, m, TickMsg{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	m = step(t, m, TickMsg{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back should work after game over")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&scriptedGame{endAfter: 100}, Services{})

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model renders nothing")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&scriptedGame{endAfter: 100}, Services{})
	if !strings.Contains(m.View(), "scripted") {
		t.Error("view should render the game")
	}
}
