package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
)

var (
	flagFPS     int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in this terminal.

Default controls (see 'blocks config show' to change them):
  Left/Right, H/L  - Move
  X/Up/K           - Rotate clockwise
  Z                - Rotate counter-clockwise
  Down/J/Space     - Drop
  P                - Pause
  R                - Restart (when paused or after game over)
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

The screen is owned by the game while it runs, so logs are discarded
unless --log-file is given.

Examples:
  blocks play
  blocks play --seed 42 --fps 30
  blocks play --log-file blocks.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Frame rate override (0 = use config)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	rc := core.DefaultConfig()
	rc.FPS = cfg.Display.FPS
	rc.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if flagFPS > 0 {
		rc.FPS = flagFPS
	}

	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail(fmt.Errorf("cannot open log file: %w", err))
		}
		defer f.Close()
		out = f
	}

	if err := tui.Run(cfg, rc, newLogger(cfg, out, "blocks")); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
