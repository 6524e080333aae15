package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

func frameOf(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Add(a)
	}
	return f
}

func TestStepMovesAndTicks(t *testing.T) {
	g := NewGame(7, nil)
	x0, y0 := g.engine.Current().Position()

	require.NoError(t, g.step(frameOf(core.ActionRight), 0.3))

	x1, y1 := g.engine.Current().Position()
	assert.Equal(t, x0+1, x1)
	assert.Equal(t, y0+1, y1)
}

func TestStepEscapeQuits(t *testing.T) {
	g := NewGame(7, nil)
	err := g.step(frameOf(core.ActionQuit), 0)
	assert.ErrorIs(t, err, ebiten.Termination)
}

func TestStepPauseAndRestart(t *testing.T) {
	g := NewGame(7, nil)
	_, y0 := g.engine.Current().Position()

	require.NoError(t, g.step(frameOf(core.ActionPause), 0))
	require.NoError(t, g.step(frameOf(core.ActionLeft), 1.0))
	_, y1 := g.engine.Current().Position()
	assert.Equal(t, y0, y1, "paused frames do not advance")

	require.NoError(t, g.step(frameOf(core.ActionPause), 0))
	for i := 0; i < 1000 && !g.engine.GameOver(); i++ {
		require.NoError(t, g.step(frameOf(core.ActionDrop), 0))
	}
	require.True(t, g.engine.GameOver())

	require.NoError(t, g.step(frameOf(core.ActionRestart), 0))
	assert.False(t, g.engine.GameOver())
	assert.Equal(t, 2, g.games)
}

func TestConvertVertices(t *testing.T) {
	src := []blocks.Vertex{{
		Position:  [3]float32{180, 12, -1},
		TexCoords: [2]float32{10, 20},
		Color:     [4]float32{0.2, 0.2, 0.2, 0.5},
	}}
	got := convertVertices(nil, src, textureSize)
	require.Len(t, got, 1)
	assert.Equal(t, ebiten.Vertex{
		DstX: 180, DstY: 12,
		SrcX: 160, SrcY: 320,
		ColorR: 0.2, ColorG: 0.2, ColorB: 0.2, ColorA: 0.5,
	}, got[0])

	reused := convertVertices(got, src, textureSize)
	assert.Same(t, &got[0], &reused[0])
}

func TestFrameFitsIndexRange(t *testing.T) {
	n := blocks.VertexCount(blocks.BoardWidth, blocks.BoardHeight)
	idx := sequentialIndices(n)
	require.Len(t, idx, n)
	assert.Equal(t, uint16(n-1), idx[n-1])
	assert.Less(t, n, 1<<16)
}

func TestBevelImage(t *testing.T) {
	img := bevelImage(textureSize)
	assert.Equal(t, uint8(0xff), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0x70), img.RGBAAt(textureSize-1, textureSize-1).R)
	assert.Equal(t, uint8(0xc8), img.RGBAAt(textureSize/2, textureSize/2).R)
}
