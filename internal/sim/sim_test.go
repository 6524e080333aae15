package sim

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/config"
)

func testOptions() Options {
	return Options{
		Games:      12,
		Workers:    3,
		MaxFrames:  20000,
		PressRate:  0.2,
		FrameDelta: 1.0 / 60,
		Seed:       2024,
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	o := testOptions()
	a, err := Run(context.Background(), o)
	require.NoError(t, err)

	o.Workers = 1
	b, err := Run(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, a.Results, b.Results)
	assert.Equal(t, a.ScoreMean, b.ScoreMean)
	assert.Equal(t, 3, a.Workers)
	assert.Equal(t, 1, b.Workers)
}

func TestRunResults(t *testing.T) {
	rep, err := Run(context.Background(), testOptions())
	require.NoError(t, err)
	require.Len(t, rep.Results, 12)

	seeds := make(map[int64]bool)
	for i, r := range rep.Results {
		assert.Equal(t, GameSeed(2024, i), r.Seed)
		seeds[r.Seed] = true
		assert.Equal(t, blocks.RowBonus*r.Rows, r.Score, "score is rows times the bonus")

		draws := 0
		for _, n := range r.Draws {
			draws += n
		}
		// Two pieces at start, then one per resolved lock.
		assert.Equal(t, r.Pieces+2-boolInt(r.GameOver), draws, "game %d", i)
	}
	assert.Len(t, seeds, 12, "game seeds are distinct")
	assert.GreaterOrEqual(t, rep.PValue, 0.0)
	assert.LessOrEqual(t, rep.PValue, 1.0)
	assert.Len(t, rep.Shapes, 7)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestIdleBotTopsOut(t *testing.T) {
	o := testOptions()
	o.PressRate = 0
	o.MaxFrames = 0
	o.FrameDelta = 0.3

	rep, err := Run(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, o.Games, rep.Finished)
	for _, r := range rep.Results {
		assert.True(t, r.GameOver)
		assert.Zero(t, r.Score, "center stacking never clears a row")
	}
}

func TestFrameCap(t *testing.T) {
	o := testOptions()
	o.MaxFrames = 10

	rep, err := Run(context.Background(), o)
	require.NoError(t, err)
	assert.Zero(t, rep.Finished)
	assert.Equal(t, 10*o.Games, rep.Frames)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no games", func(o *Options) { o.Games = 0 }},
		{"negative workers", func(o *Options) { o.Workers = -1 }},
		{"negative frame cap", func(o *Options) { o.MaxFrames = -1 }},
		{"press rate above one", func(o *Options) { o.PressRate = 1.5 }},
		{"zero frame delta", func(o *Options) { o.FrameDelta = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOptions()
			tt.mutate(&o)
			_, err := Run(context.Background(), o)
			require.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	o := OptionsFrom(config.Default().Sim, 7)
	assert.Equal(t, config.Default().Sim.Games, o.Games)
	assert.Equal(t, int64(7), o.Seed)
	assert.NoError(t, o.validate())
}

func TestSummarize(t *testing.T) {
	rep := Summarize([]GameResult{
		{Score: 400, Rows: 1, Pieces: 10, Frames: 100, GameOver: true, Draws: [7]int{1, 1, 1, 1, 1, 1, 1}},
		{Score: 800, Rows: 2, Pieces: 20, Frames: 200, GameOver: true, Draws: [7]int{1, 1, 1, 1, 1, 1, 1}},
		{Score: 0, Rows: 0, Pieces: 3, Frames: 50, Draws: [7]int{1, 1, 1, 1, 1, 1, 1}},
	})

	assert.Equal(t, 3, rep.Games)
	assert.Equal(t, 2, rep.Finished)
	assert.Equal(t, 350, rep.Frames)
	assert.InDelta(t, 400, rep.ScoreMean, 1e-9)
	assert.InDelta(t, 400, rep.ScoreStdDev, 1e-9)
	assert.InDelta(t, 400, rep.ScoreMedian, 1e-9)
	assert.Equal(t, 800, rep.ScoreMax)
	assert.InDelta(t, 1, rep.RowsMean, 1e-9)
	assert.InDelta(t, 11, rep.PiecesMean, 1e-9)

	// Perfectly uniform draws.
	assert.InDelta(t, 0, rep.ChiSquare, 1e-12)
	assert.InDelta(t, 1, rep.PValue, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	rep := Summarize(nil)
	assert.Zero(t, rep.Games)
	assert.Zero(t, rep.ScoreMean)
}

func TestShapesFollowRandomMapping(t *testing.T) {
	var r GameResult
	r.Draws = [7]int{7, 1, 2, 3, 4, 5, 6} // raw draw 0 is T
	rep := Summarize([]GameResult{r})

	want := map[blocks.Shape]int{
		blocks.ShapeT: 7,
		blocks.ShapeO: 1,
		blocks.ShapeI: 2,
		blocks.ShapeS: 3,
		blocks.ShapeZ: 4,
		blocks.ShapeL: 5,
		blocks.ShapeJ: 6,
	}
	for _, s := range rep.Shapes {
		assert.Equal(t, want[s.Shape], s.Count, s.Shape.String())
	}
}

func TestUniformitySkewed(t *testing.T) {
	chi2, p := uniformity([]int{700, 0, 0, 0, 0, 0, 0})
	assert.Greater(t, chi2, 100.0)
	assert.Less(t, p, 1e-6)

	chi2, p = uniformity(nil)
	assert.Zero(t, chi2)
	assert.Equal(t, 1.0, p)
}

func TestTables(t *testing.T) {
	rep := Summarize([]GameResult{
		{Score: 12000, Rows: 30, Pieces: 90, GameOver: true, Draws: [7]int{3, 2, 4, 1, 5, 2, 3}},
	})
	table := rep.Table()
	assert.Contains(t, table, "Simulation")
	assert.Contains(t, table, "12,000")

	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	for _, l := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(l)), "rows are aligned: %q", l)
	}

	shapes := rep.ShapeTable()
	for _, s := range blocks.Shapes() {
		assert.Contains(t, shapes, s.String())
	}
	assert.Contains(t, shapes, "p-value")

	var buf bytes.Buffer
	n, err := rep.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
}
