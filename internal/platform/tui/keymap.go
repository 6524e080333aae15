package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// KeyMap translates Bubble Tea key messages to actions using configurable bindings.
// It also implements help.KeyMap.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Drop      key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// NewKeyMap builds bindings from the keys section of the config.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	return KeyMap{
		Left:      newBinding(cfg.Left, "left"),
		Right:     newBinding(cfg.Right, "right"),
		Drop:      newBinding(cfg.Drop, "drop"),
		RotateCW:  newBinding(cfg.RotateCW, "rotate ↻"),
		RotateCCW: newBinding(cfg.RotateCCW, "rotate ↺"),
		Pause:     newBinding(cfg.Pause, "pause"),
		Restart:   newBinding(cfg.Restart, "restart"),
		Help:      newBinding(cfg.Help, "more"),
		Quit:      newBinding(cfg.Quit, "quit"),
	}
}

func newBinding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpLabel(keys), desc),
	)
}

// helpLabel renders key names for the help line, e.g. "←/h".
func helpLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			k = "space"
		case "left":
			k = "←"
		case "right":
			k = "→"
		case "up":
			k = "↑"
		case "down":
			k = "↓"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, "/")
}

// Action returns the action bound to msg, or ActionNone.
// Bindings are checked in a fixed order, so a key bound twice resolves to the
// first match.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Drop):
		return core.ActionDrop
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Drop, k.RotateCW, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Drop},
		{k.RotateCW, k.RotateCCW},
		{k.Pause, k.Restart, k.Help, k.Quit},
	}
}
