package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/sim"
)

var (
	flagGames      int
	flagWorkers    int
	flagMaxFrames  int
	flagPressRate  float64
	flagNoProgress bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless bot games and print statistics",
	Long: `Play many games with a bot that presses random keys, then print score
statistics and a uniformity check of the piece randomizer.

Games are seeded from --seed, so the same seed reproduces the same results
regardless of the worker count.

Examples:
  blocks sim
  blocks sim --games 5000 --workers 8 --seed 1
  blocks sim --press-rate 0 --max-frames 0`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagGames, "games", 0, "Number of games (0 = use config)")
	simCmd.Flags().IntVar(&flagWorkers, "workers", -1, "Worker goroutines (-1 = use config, 0 = GOMAXPROCS)")
	simCmd.Flags().IntVar(&flagMaxFrames, "max-frames", -1, "Frame cap per game (-1 = use config, 0 = none)")
	simCmd.Flags().Float64Var(&flagPressRate, "press-rate", -1, "Key press probability per frame (-1 = use config)")
	simCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := sim.OptionsFrom(cfg.Sim, seed)
	if flagGames > 0 {
		opts.Games = flagGames
	}
	if flagWorkers >= 0 {
		opts.Workers = flagWorkers
	}
	if flagMaxFrames >= 0 {
		opts.MaxFrames = flagMaxFrames
	}
	if flagPressRate >= 0 {
		opts.PressRate = flagPressRate
	}
	if !flagNoProgress {
		opts.Progress = os.Stderr
	}
	opts.Logger = newLogger(cfg, os.Stderr, "blocks-sim")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := sim.Run(ctx, opts)
	if err != nil {
		fail(err)
	}
	opts.Logger.Info("seed", "value", seed)
	if _, err := rep.WriteTo(os.Stdout); err != nil {
		fail(err)
	}
}
