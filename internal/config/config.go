// Package config provides YAML-based configuration for the blocks frontends:
// frame rate, key bindings, server addresses and logging.
// Game rules are fixed and are not configurable here.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the root of blocks.yaml.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Keys    KeysConfig    `yaml:"keys"`
	SSH     SSHConfig     `yaml:"ssh"`
	API     APIConfig     `yaml:"api"`
	Window  WindowConfig  `yaml:"window"`
	Sim     SimConfig     `yaml:"sim"`
	Log     LogConfig     `yaml:"log"`
}

// DisplayConfig controls the terminal frontend.
type DisplayConfig struct {
	FPS       int  `yaml:"fps"`        // Frames per second
	CellWidth int  `yaml:"cell_width"` // Terminal columns per block
	ShowHelp  bool `yaml:"show_help"`  // Key help line under the board
}

// KeysConfig maps actions to terminal key names as reported by Bubble Tea
// (e.g. "left", "h", "ctrl+c", " ").
type KeysConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	Drop      []string `yaml:"drop"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	Pause     []string `yaml:"pause"`
	Restart   []string `yaml:"restart"`
	Help      []string `yaml:"help"`
	Quit      []string `yaml:"quit"`
}

// SSHConfig controls the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Empty means ~/.blocks/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// APIConfig controls the HTTP session server.
type APIConfig struct {
	Address    string        `yaml:"address"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	MaxSession int           `yaml:"max_sessions"`
}

// WindowConfig controls the graphical frontend.
type WindowConfig struct {
	Scale int    `yaml:"scale"` // Window pixels per logical pixel
	Title string `yaml:"title"`
}

// SimConfig holds defaults for the headless simulator.
type SimConfig struct {
	Games      int     `yaml:"games"`
	Workers    int     `yaml:"workers"`     // 0 means GOMAXPROCS
	MaxFrames  int     `yaml:"max_frames"`  // Per-game frame cap
	PressRate  float64 `yaml:"press_rate"`  // Probability of a key press per frame
	FrameDelta float64 `yaml:"frame_delta"` // Simulated seconds per frame
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ParsedLevel returns the configured log level.
func (l LogConfig) ParsedLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log level %q: %w", l.Level, err)
	}
	return lvl, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the config for values the frontends cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("display.fps must be positive, got %d", c.Display.FPS))
	}
	if c.Display.CellWidth <= 0 {
		errs = append(errs, fmt.Errorf("display.cell_width must be positive, got %d", c.Display.CellWidth))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window.scale must be positive, got %d", c.Window.Scale))
	}
	if c.Sim.FrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("sim.frame_delta must be positive, got %v", c.Sim.FrameDelta))
	}
	if c.Sim.PressRate < 0 || c.Sim.PressRate > 1 {
		errs = append(errs, fmt.Errorf("sim.press_rate must be within [0, 1], got %v", c.Sim.PressRate))
	}
	for name, keys := range c.Keys.byName() {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s has no bindings", name))
		}
	}
	if _, err := c.Log.ParsedLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func (k KeysConfig) byName() map[string][]string {
	return map[string][]string{
		"left":       k.Left,
		"right":      k.Right,
		"drop":       k.Drop,
		"rotate_cw":  k.RotateCW,
		"rotate_ccw": k.RotateCCW,
		"pause":      k.Pause,
		"restart":    k.Restart,
		"help":       k.Help,
		"quit":       k.Quit,
	}
}
