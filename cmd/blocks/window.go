package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/window"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a window and play with the keyboard.

Controls:
  Left/Right  - Move
  X           - Rotate clockwise
  Z           - Rotate counter-clockwise
  Down        - Drop
  P           - Pause
  R           - Restart
  Esc         - Quit

Examples:
  blocks window
  blocks window --scale 3`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 0, "Window scale override (0 = use config)")
}

func runWindow(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagScale > 0 {
		cfg.Window.Scale = flagScale
	}

	if err := window.Run(cfg.Window, flagSeed, newLogger(cfg, os.Stderr, "blocks-window")); err != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", err)
		os.Exit(1)
	}
}
