package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// maxFrameDelta caps the time fed to the engine for one frame, so a stalled
// terminal does not release a burst of queued ticks.
const maxFrameDelta = 0.5

// Model is the Bubble Tea model running one blocks game at a time.
type Model struct {
	cfg      config.Config
	runtime  core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	viewport Viewport
	screen   *core.Screen
	logger   *log.Logger

	engine   *blocks.Engine
	games    int // Games started, used to derive restart seeds
	lastTick time.Time
	paused   bool
	quitting bool
}

// NewModel creates a model and starts the first game.
// A zero seed is replaced with a clock-derived one. logger may be nil.
func NewModel(cfg config.Config, rc core.RuntimeConfig, logger *log.Logger) Model {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.FPS <= 0 {
		rc.FPS = cfg.Display.FPS
	}

	w, h := fieldSize(cfg.Display.CellWidth)
	m := Model{
		cfg:      cfg,
		runtime:  rc,
		keys:     NewKeyMap(cfg.Keys),
		help:     help.New(),
		viewport: newViewport(cfg.Display.CellWidth),
		screen:   core.NewScreen(w, h),
		logger:   logger,
	}
	m.engine = m.newEngine()
	return m
}

// newEngine starts a game seeded from the base seed and the number of games played.
func (m *Model) newEngine() *blocks.Engine {
	seed := m.runtime.Seed + int64(m.games)
	m.games++
	return blocks.New(rand.New(rand.NewSource(seed)), blocks.WithLogger(m.logger))
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		if !m.engine.GameOver() {
			m.paused = !m.paused
		}
	case core.ActionRestart:
		if m.engine.GameOver() || m.paused {
			m.engine = m.newEngine()
			m.paused = false
		}
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	default:
		if action.IsGameplay() && !m.paused {
			m.engine.HandleKey(action.EngineKey(), true)
		}
	}
	return m, nil
}

// handleTick feeds the wall-clock time since the previous frame to the engine.
// Paused frames advance the clock without feeding it.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.paused && !m.lastTick.IsZero() {
		dt := core.ClampF(now.Sub(m.lastTick).Seconds(), 0, maxFrameDelta)
		m.engine.Update(dt)
	}
	m.lastTick = now
	return m, tickCmd(m.runtime.FPS)
}

// State returns the HUD summary of the current game.
func (m Model) State() core.GameState {
	stats := m.engine.Stats()
	return core.GameState{
		Score:    m.engine.Score(),
		Lines:    stats.RowsCleared,
		Pieces:   stats.PiecesLocked,
		GameOver: m.engine.GameOver(),
		Paused:   m.paused,
	}
}

// Engine returns the running game.
func (m Model) Engine() *blocks.Engine {
	return m.engine
}

// Field renders the play field without styling or help, for tests and dumps.
func (m Model) Field() string {
	m.draw()
	return m.screen.String()
}

func (m Model) draw() {
	state := m.State()
	drawFrame(m.screen, m.viewport, m.engine.Render(), state)

	switch {
	case state.GameOver:
		drawOverlay(m.screen, boardRect(m.viewport), []string{
			"GAME OVER",
			"",
			"score " + formatScore(state.Score),
			"r to restart",
		}, core.ColorBrightRed)
	case state.Paused:
		drawOverlay(m.screen, boardRect(m.viewport), []string{
			"PAUSED",
			"p to resume",
		}, core.ColorBrightYellow)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	out := RenderScreen(m.screen)
	if m.cfg.Display.ShowHelp {
		out += "\n" + m.help.View(m.keys)
	}
	if m.runtime.ScreenW > 0 {
		out = lipgloss.PlaceHorizontal(m.runtime.ScreenW, lipgloss.Center, out)
	}
	return out
}

// Run starts a local Bubble Tea program.
func Run(cfg config.Config, rc core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(cfg, rc, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
