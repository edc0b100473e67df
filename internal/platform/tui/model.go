package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/logging"
	"github.com/vovakirdan/blockdrop/internal/metrics"
	"github.com/vovakirdan/blockdrop/internal/registry"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

// Services are the collaborators a game session reports to.
// Any of them may be nil.
type Services struct {
	Store   *storage.Store
	Metrics *metrics.Recorder
	Logger  *log.Logger
	Player  string // SSH user name, empty for local play
}

func (s Services) withDefaults() Services {
	if s.Logger == nil {
		s.Logger = logging.Discard()
	}
	return s
}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	started    time.Time
	quitOnBack bool // Standalone program: going back ends it
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc.withDefaults(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		started:    time.Now(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.svc.Logger.Info("game started", "game", m.game.ID(), "player", m.svc.Player, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionBack:
		// Back to menu only when nothing is at stake
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.started = time.Now()
		m.inputFrame.Clear()
		m.svc.Metrics.ObserveEvents(m.game.ID(), []core.Event{{Kind: core.EventRestart}})
		m.svc.Logger.Info("game restarted", "game", m.game.ID(), "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.observe(result.Events)

	if m.gameState.GameOver && !m.runSaved {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// observe forwards gameplay events to metrics and the debug log.
func (m Model) observe(events []core.Event) {
	if len(events) == 0 {
		return
	}
	m.svc.Metrics.ObserveEvents(m.game.ID(), events)

	for _, e := range events {
		switch e.Kind {
		case core.EventLand, core.EventMerge, core.EventDrop:
			m.svc.Logger.Debug("game event", "game", m.game.ID(), "kind", string(e.Kind), "value", e.Value)
		}
	}
}

// finishRun records a finished game once. Storage is best-effort: failures
// are logged and play continues.
func (m *Model) finishRun() {
	m.runSaved = true

	run := storage.Run{
		GameID:   m.game.ID(),
		Player:   m.svc.Player,
		Score:    m.gameState.Score,
		Duration: time.Since(m.started),
	}
	if rr, ok := m.game.(registry.RunReporter); ok {
		run.MaxTile = rr.MaxTile()
		run.Launches, run.Merges = rr.Stats()
	}

	m.svc.Metrics.RunFinished(run.GameID, run.Score, run.MaxTile)
	m.svc.Logger.Info("game over",
		"game", run.GameID,
		"score", run.Score,
		"max_tile", run.MaxTile,
		"duration", run.Duration.Round(time.Second),
	)

	if m.svc.Store == nil {
		return
	}
	if run.Score > 0 {
		if _, err := m.svc.Store.SaveScore(run.GameID, run.Score); err != nil {
			m.svc.Logger.Warn("could not save score", "game", run.GameID, "error", err)
		}
	}
	id, err := m.svc.Store.SaveRun(run)
	if err != nil {
		m.svc.Logger.Warn("could not save run", "game", run.GameID, "error", err)
		return
	}
	m.svc.Logger.Debug("run saved", "id", id)
}

// saveScreenshot saves the current screen to ~/.blockdrop/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.svc.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.Logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.svc.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the given game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewModel(game, svc, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Clicks launch tiles
	)

	_, err := p.Run()
	return err
}
