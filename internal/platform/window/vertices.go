package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
)

// convertVertices translates an engine frame into ebiten vertices, reusing dst.
// Texture coordinates are in block units and are scaled to texels; positions
// are already in logical screen pixels.
func convertVertices(dst []ebiten.Vertex, src []blocks.Vertex, texSize float32) []ebiten.Vertex {
	if cap(dst) < len(src) {
		dst = make([]ebiten.Vertex, len(src))
	}
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = ebiten.Vertex{
			DstX:   v.Position[0],
			DstY:   v.Position[1],
			SrcX:   v.TexCoords[0] * texSize,
			SrcY:   v.TexCoords[1] * texSize,
			ColorR: v.Color[0],
			ColorG: v.Color[1],
			ColorB: v.Color[2],
			ColorA: v.Color[3],
		}
	}
	return dst
}

// sequentialIndices returns 0..n-1. Every triangle in the frame has its own
// three vertices, so no index sharing is needed.
func sequentialIndices(n int) []uint16 {
	idx := make([]uint16, n)
	for i := range idx {
		idx[i] = uint16(i)
	}
	return idx
}
