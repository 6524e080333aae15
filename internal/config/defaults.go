package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// Default returns the hard-coded configuration. It matches defaults/blocks.yaml
// and is used when no YAML source can be parsed.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			FPS:       60,
			CellWidth: 2,
			ShowHelp:  true,
		},
		Keys: KeysConfig{
			Left:      []string{"left", "h"},
			Right:     []string{"right", "l"},
			Drop:      []string{"down", "j", " "},
			RotateCW:  []string{"x", "up", "k"},
			RotateCCW: []string{"z"},
			Pause:     []string{"p"},
			Restart:   []string{"r"},
			Help:      []string{"?"},
			Quit:      []string{"q", "ctrl+c", "esc"},
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		API: APIConfig{
			Address:    ":8080",
			SessionTTL: 30 * time.Minute,
			MaxSession: 1024,
		},
		Window: WindowConfig{
			Scale: 2,
			Title: "Blocks",
		},
		Sim: SimConfig{
			Games:      200,
			MaxFrames:  60 * 60 * 10,
			PressRate:  0.1,
			FrameDelta: 1.0 / 60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default blocks.yaml.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
