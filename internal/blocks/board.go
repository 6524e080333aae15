package blocks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfBounds is returned when a board coordinate falls outside the grid.
var ErrOutOfBounds = errors.New("cell out of bounds")

// Board is the fixed grid of locked cells.
// Cells are stored in row-major order: index = y*width + x, with y = 0 at the top.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board in the standard 10x20 configuration.
func NewBoard() *Board {
	return NewBoardSize(BoardWidth, BoardHeight)
}

// NewBoardSize creates an empty board with the given dimensions.
// Dimensions never change after construction.
func NewBoardSize(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// SpawnLocation returns the global-grid position new pieces are placed at.
func (b *Board) SpawnLocation() (x, y int) {
	return BoardOffsetX + b.width/2, BoardOffsetY + 1
}

// InBounds reports whether (x, y) is a valid board coordinate.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

// AreCellsEmpty reports whether every location is an empty cell.
// Callers bounds-check first; an out-of-bounds location counts as occupied.
func (b *Board) AreCellsEmpty(locs []Point) bool {
	for _, p := range locs {
		if !b.InBounds(p.X, p.Y) {
			return false
		}
		if b.cells[b.index(p.X, p.Y)].Filled {
			return false
		}
	}
	return true
}

// SetCell stores c at (x, y).
func (b *Board) SetCell(x, y int, c Cell) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("board: set (%d, %d) on %dx%d: %w", x, y, b.width, b.height, ErrOutOfBounds)
	}
	if !c.Filled {
		c = Empty()
	}
	b.cells[b.index(x, y)] = c
	return nil
}

// Cell returns the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, error) {
	if !b.InBounds(x, y) {
		return Cell{}, fmt.Errorf("board: get (%d, %d) on %dx%d: %w", x, y, b.width, b.height, ErrOutOfBounds)
	}
	return b.cells[b.index(x, y)], nil
}

// rowComplete reports whether every cell in row y is filled.
func (b *Board) rowComplete(y int) bool {
	row := b.cells[y*b.width : (y+1)*b.width]
	for _, c := range row {
		if !c.Filled {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes every full row at once. Rows above each gap fall
// to fill it, keeping their relative order, and empty rows enter at the top.
// Returns the number of rows removed.
func (b *Board) ClearCompletedRows() int {
	// Compact surviving rows toward the bottom, scanning upward.
	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		if b.rowComplete(src) {
			continue
		}
		if dst != src {
			copy(b.cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
		}
		dst--
	}

	removed := dst + 1
	for i := 0; i < removed*b.width; i++ {
		b.cells[i] = Empty()
	}
	return removed
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

// Lines returns one string per row, '#' for filled cells and '.' for empty ones.
func (b *Board) Lines() []string {
	lines := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		sb.Grow(b.width)
		for x := 0; x < b.width; x++ {
			if b.cells[b.index(x, y)].Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

// String renders the board as newline-separated rows.
func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}

// WriteVertices emits one quad per cell in row-major order into dst, which must
// hold at least 6*width*height vertices. Empty cells still emit a quad in NoColor.
func (b *Board) WriteVertices(dst []Vertex) {
	i := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			writeBlock(dst[i:i+verticesPerQuad], BoardOffsetX+x, BoardOffsetY+y, b.cells[b.index(x, y)].renderColor())
			i += verticesPerQuad
		}
	}
}
