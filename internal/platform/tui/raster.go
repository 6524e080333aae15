package tui

import (
	"math"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

const (
	solidRune = '█'
	shadeRune = '·'
)

// Viewport maps vertex-space pixels onto terminal cells.
// A block is BlockSize pixels square in vertex space and CellWidth columns by
// one row on screen.
type Viewport struct {
	OriginX   int // Block column shown at OffsetX
	OriginY   int // Block row shown at OffsetY
	CellWidth int // Columns per block
	OffsetX   int // Screen column of the origin
	OffsetY   int // Screen row of the origin
}

// column converts a vertex-space x coordinate to a screen column.
func (v Viewport) column(px float32) int {
	block := int(math.Floor(float64(px) / blocks.BlockSize))
	return v.OffsetX + (block-v.OriginX)*v.CellWidth
}

// row converts a vertex-space y coordinate to a screen row.
func (v Viewport) row(py float32) int {
	block := int(math.Floor(float64(py) / blocks.BlockSize))
	return v.OffsetY + block - v.OriginY
}

// BlockRect returns the screen rectangle covering w x h blocks whose top-left
// block is (bx, by) on the global grid.
func (v Viewport) BlockRect(bx, by, w, h int) core.Rect {
	return core.NewRect(
		v.OffsetX+(bx-v.OriginX)*v.CellWidth,
		v.OffsetY+by-v.OriginY,
		w*v.CellWidth,
		h,
	)
}

// Rasterize paints a vertex buffer onto the screen, one quad (six vertices) at
// a time in buffer order, so later quads cover earlier ones. Fully transparent
// quads are skipped. Opaque quads become solid blocks and translucent quads a
// shaded fill, colored with the nearest palette entry.
func Rasterize(dst *core.Screen, verts []blocks.Vertex, vp Viewport) {
	const quad = 6
	for i := 0; i+quad <= len(verts); i += quad {
		q := verts[i : i+quad]
		c := q[0].Color
		if c[3] <= 0 {
			continue
		}

		minX, minY := q[0].Position[0], q[0].Position[1]
		maxX, maxY := minX, minY
		for _, v := range q[1:] {
			minX = min(minX, v.Position[0])
			minY = min(minY, v.Position[1])
			maxX = max(maxX, v.Position[0])
			maxY = max(maxY, v.Position[1])
		}

		cell := core.Cell{Rune: solidRune, Color: core.NearestColor(c[0], c[1], c[2])}
		if c[3] < 1 {
			cell.Rune = shadeRune
		}

		x0, y0 := vp.column(minX), vp.row(minY)
		x1, y1 := vp.column(maxX), vp.row(maxY)
		dst.FillRect(core.NewRect(x0, y0, x1-x0, y1-y0), cell)
	}
}
