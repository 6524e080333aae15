// Package sim plays many blocks games headlessly with a random-input bot.
// It is used to sanity-check the engine over long runs and to measure the
// shape distribution of the piece randomizer.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/config"
)

// ErrInvalidOptions is wrapped by every option validation failure.
var ErrInvalidOptions = errors.New("sim: invalid options")

// Options controls a simulation run.
type Options struct {
	Games      int
	Workers    int // 0 means GOMAXPROCS
	MaxFrames  int // 0 means no cap
	PressRate  float64
	FrameDelta float64
	Seed       int64

	Progress io.Writer // Progress bar destination; nil hides it
	Logger   *log.Logger
}

// OptionsFrom builds options from the sim section of the config.
func OptionsFrom(cfg config.SimConfig, seed int64) Options {
	return Options{
		Games:      cfg.Games,
		Workers:    cfg.Workers,
		MaxFrames:  cfg.MaxFrames,
		PressRate:  cfg.PressRate,
		FrameDelta: cfg.FrameDelta,
		Seed:       seed,
	}
}

func (o Options) validate() error {
	switch {
	case o.Games < 1:
		return fmt.Errorf("%w: games must be at least 1, got %d", ErrInvalidOptions, o.Games)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOptions, o.Workers)
	case o.MaxFrames < 0:
		return fmt.Errorf("%w: max frames must not be negative, got %d", ErrInvalidOptions, o.MaxFrames)
	case o.PressRate < 0 || o.PressRate > 1:
		return fmt.Errorf("%w: press rate must be within [0, 1], got %v", ErrInvalidOptions, o.PressRate)
	case !(o.FrameDelta > 0):
		return fmt.Errorf("%w: frame delta must be positive, got %v", ErrInvalidOptions, o.FrameDelta)
	}
	return nil
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed     int64
	Score    int
	Rows     int
	Pieces   int
	Frames   int
	GameOver bool   // False when the frame cap stopped the game
	Draws    [7]int // Randomizer draws by raw value
}

// botKeys are the inputs the bot chooses from.
var botKeys = []blocks.Key{
	blocks.KeyLeft,
	blocks.KeyRight,
	blocks.KeyDown,
	blocks.KeyRotateCW,
	blocks.KeyRotateCCW,
}

// countingSource records every seven-way draw the engine makes.
type countingSource struct {
	rng   *rand.Rand
	draws [7]int
}

func (c *countingSource) Intn(n int) int {
	v := c.rng.Intn(n)
	if n == len(c.draws) {
		c.draws[v]++
	}
	return v
}

// Play runs one game to completion or to the frame cap.
func Play(ctx context.Context, seed int64, o Options) (GameResult, error) {
	src := &countingSource{rng: rand.New(rand.NewSource(seed))}
	bot := rand.New(rand.NewSource(int64(mix63(uint64(seed) ^ botSalt))))
	e := blocks.New(src)

	res := GameResult{Seed: seed}
	for !e.GameOver() && (o.MaxFrames == 0 || res.Frames < o.MaxFrames) {
		if res.Frames%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if bot.Float64() < o.PressRate {
			e.HandleKey(botKeys[bot.Intn(len(botKeys))], true)
		}
		e.Update(o.FrameDelta)
		res.Frames++
	}

	st := e.Stats()
	res.Score = e.Score()
	res.Rows = st.RowsCleared
	res.Pieces = st.PiecesLocked
	res.GameOver = e.GameOver()
	res.Draws = src.draws
	return res, nil
}

// Run plays o.Games games across a worker pool and summarizes them.
// Results are ordered by game index and do not depend on the worker count.
func Run(ctx context.Context, o Options) (Report, error) {
	if err := o.validate(); err != nil {
		return Report{}, err
	}
	logger := o.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := o.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, o.Games)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]GameResult, o.Games)
	jobs := make(chan int)

	bar := pb.New(o.Games)
	if o.Progress != nil {
		bar.SetWriter(o.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	var (
		errOnce  sync.Once
		firstErr error
	)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := Play(ctx, GameSeed(o.Seed, i), o)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				results[i] = res
				logger.Debug("game finished", "game", i, "seed", res.Seed, "score", res.Score, "frames", res.Frames)
				bar.Increment()
			}
		}()
	}

feed:
	for i := 0; i < o.Games; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if firstErr != nil {
		return Report{}, fmt.Errorf("sim: %w", firstErr)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}

	rep := Summarize(results)
	rep.Workers = workers
	rep.Elapsed = used
	logger.Info("simulation finished", "games", rep.Games, "workers", workers, "elapsed", used.Round(time.Millisecond))
	return rep, nil
}

const (
	mask63  = uint64(1<<63) - 1
	golden  = 0x9E3779B97F4A7C15
	botSalt = 0x5DEECE66D
)

// GameSeed derives the seed of game i from the run seed.
func GameSeed(base int64, i int) int64 {
	return int64(mix63(uint64(base) + uint64(i+1)*golden))
}

// mix63 scrambles x into a non-negative 63-bit value.
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
