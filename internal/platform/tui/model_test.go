package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	rc := core.DefaultConfig()
	rc.Seed = 99
	return NewModel(config.Default(), rc, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func TestModelMovesPiece(t *testing.T) {
	m := newTestModel(t)
	x0, _ := m.Engine().Current().Position()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	x1, _ := m.Engine().Current().Position()
	assert.Equal(t, x0+1, x1)
}

func TestModelTickFeedsElapsedTime(t *testing.T) {
	m := newTestModel(t)
	_, y0 := m.Engine().Current().Position()

	start := time.Unix(1000, 0)
	m = update(t, m, TickMsg(start))
	m = update(t, m, TickMsg(start.Add(300*time.Millisecond)))

	_, y1 := m.Engine().Current().Position()
	assert.Equal(t, y0+1, y1)
}

func TestModelPauseStopsTime(t *testing.T) {
	m := newTestModel(t)
	_, y0 := m.Engine().Current().Position()

	m = update(t, m, runeKey('p'))
	assert.True(t, m.State().Paused)

	start := time.Unix(1000, 0)
	m = update(t, m, TickMsg(start))
	m = update(t, m, TickMsg(start.Add(400*time.Millisecond)))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	x, y1 := m.Engine().Current().Position()
	assert.Equal(t, y0, y1)
	sx, _ := m.Engine().Board().SpawnLocation()
	assert.Equal(t, sx, x, "input is ignored while paused")
	assert.Contains(t, m.Field(), "PAUSED")
}

func TestModelRestartAfterGameOver(t *testing.T) {
	m := newTestModel(t)

	// Restart is refused mid-game.
	first := m.Engine()
	m = update(t, m, runeKey('r'))
	assert.Same(t, first, m.Engine())

	now := time.Unix(1000, 0)
	for i := 0; i < 1000 && !m.State().GameOver; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		now = now.Add(10 * time.Millisecond)
		m = update(t, m, TickMsg(now))
	}
	require.True(t, m.State().GameOver)
	assert.Contains(t, m.Field(), "GAME OVER")

	m = update(t, m, runeKey('r'))
	assert.NotSame(t, first, m.Engine())
	assert.False(t, m.State().GameOver)
	assert.Zero(t, m.State().Score)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestModelViewIncludesHelp(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "quit")
}
