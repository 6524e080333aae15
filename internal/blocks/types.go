// Package blocks implements the falling-block puzzle engine: the board of locked
// cells, the seven tetromino shapes, gravity and input rules, line clears, scoring,
// and the fixed vertex layout consumed by renderers.
//
// The package contains no platform code. Frontends feed it key presses and elapsed
// time, then read back vertices and the score.
package blocks

// Board geometry and rule constants. None of these are runtime-configurable.
const (
	BoardWidth  = 10
	BoardHeight = 20

	TickInterval = 0.25 // Seconds of simulated time between gravity steps
	RowBonus     = 400  // Score added per cleared row

	BlockSize = 12 // Pixels per block in vertex space

	// BoardOffsetX and BoardOffsetY place the board on the global block grid.
	// Piece positions live on the global grid; collision math subtracts this offset.
	BoardOffsetX = 15
	BoardOffsetY = 1

	// PreviewX and PreviewY are where the upcoming piece is displayed.
	PreviewX = 30
	PreviewY = 7
)

// Point is an integer coordinate, in blocks.
type Point struct {
	X, Y int
}

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// NoColor is stored by empty cells. Renderers treat it as fully transparent.
var NoColor = Color{0, 0, 0, 0}

// backgroundTint is the dark translucent fill behind the board.
var backgroundTint = Color{0.20, 0.20, 0.20, 0.5}

// Cell is one board square: either empty or holding the color of a locked block.
type Cell struct {
	Color  Color
	Filled bool
}

// Filled returns a cell holding the given color.
func Filled(c Color) Cell {
	return Cell{Color: c, Filled: true}
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Color: NoColor}
}

// renderColor is the color emitted into the vertex buffer for this cell.
func (c Cell) renderColor() Color {
	if !c.Filled {
		return NoColor
	}
	return c.Color
}

// Key identifies a game input recognized by the engine.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyDown // Hard drop
	KeyRotateCW
	KeyRotateCCW
)

// String returns the canonical lowercase name of the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	case KeyRotateCW:
		return "rotate_cw"
	case KeyRotateCCW:
		return "rotate_ccw"
	default:
		return "none"
	}
}

// ParseKey converts a key name to a Key. Accepts the String() forms plus the
// short aliases "cw", "ccw" and "drop".
func ParseKey(name string) (Key, bool) {
	switch name {
	case "left":
		return KeyLeft, true
	case "right":
		return KeyRight, true
	case "down", "drop":
		return KeyDown, true
	case "rotate_cw", "cw":
		return KeyRotateCW, true
	case "rotate_ccw", "ccw":
		return KeyRotateCCW, true
	}
	return KeyNone, false
}
