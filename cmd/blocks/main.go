// blocks is a falling-block puzzle game with terminal, SSH, window and HTTP frontends.
//
// Usage:
//
//	blocks play              - Play in the terminal
//	blocks window            - Play in a desktop window
//	blocks serve             - Start SSH server for remote play
//	blocks api               - Start HTTP session server
//	blocks sim               - Run headless bot games and print statistics
//	blocks config init|show  - Write or print the configuration
//	blocks version           - Print version
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.blocks, ./configs, embedded)
//	--seed <value>      - RNG seed for reproducible games
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle for terminals, windows and the network",
	Long: `Blocks is a falling-block puzzle game. One engine drives several frontends:
the terminal, an SSH server, a desktop window and an HTTP session API.

Available commands:
  play     - Play in this terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  api      - Start HTTP session server
  sim      - Run headless bot games and report statistics
  config   - Write or print the configuration
  version  - Print version

Examples:
  blocks play
  blocks play --seed 42
  blocks serve --ssh :2222
  blocks sim --games 1000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config and applies the --log-level override.
// It exits the process on failure.
func loadConfig() config.Config {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		fail(err)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			fail(err)
		}
	}
	newLogger(cfg, os.Stderr, "blocks").Debug("config loaded", "source", src)
	return cfg
}

// newLogger builds a logger writing to w at the configured level.
func newLogger(cfg config.Config, w io.Writer, prefix string) *log.Logger {
	lvl, err := cfg.Log.ParsedLevel()
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
