package blocks

import "fmt"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeO Shape = iota
	ShapeI
	ShapeS
	ShapeZ
	ShapeL
	ShapeJ
	ShapeT
)

type shapeSpec struct {
	name    string
	offsets [4]Point
	color   Color
}

// shapeSpecs holds the fixed offsets and color of every shape.
// Offsets are relative to the piece position; rotation pivots on (0, 0).
var shapeSpecs = [...]shapeSpec{
	ShapeO: {"O", [4]Point{{0, 1}, {1, 1}, {0, 0}, {1, 0}}, Color{1.0, 1.0, 0.0, 1.0}},
	ShapeI: {"I", [4]Point{{0, 0}, {0, 1}, {0, 2}, {0, -1}}, Color{0.0, 1.0, 1.0, 1.0}},
	ShapeS: {"S", [4]Point{{0, 1}, {-1, 1}, {0, 0}, {1, 0}}, Color{1.0, 0.0, 0.0, 1.0}},
	ShapeZ: {"Z", [4]Point{{0, 0}, {0, 1}, {-1, 0}, {1, 1}}, Color{0.0, 1.0, 0.0, 1.0}},
	ShapeL: {"L", [4]Point{{0, 1}, {0, 0}, {0, -1}, {-1, -1}}, Color{1.0, 0.55, 0.0, 1.0}},
	ShapeJ: {"J", [4]Point{{0, 1}, {0, 0}, {0, -1}, {1, -1}}, Color{1.0, 0.0, 1.0, 1.0}},
	ShapeT: {"T", [4]Point{{1, 0}, {0, 0}, {-1, 0}, {0, -1}}, Color{0.0, 0.0, 1.0, 1.0}},
}

// Shapes returns all shapes in declaration order.
func Shapes() []Shape {
	return []Shape{ShapeO, ShapeI, ShapeS, ShapeZ, ShapeL, ShapeJ, ShapeT}
}

// String returns the single-letter shape name.
func (s Shape) String() string {
	if int(s) < len(shapeSpecs) {
		return shapeSpecs[s].name
	}
	return "?"
}

// Color returns the display color of the shape.
func (s Shape) Color() Color {
	return shapeSpecs[s].color
}

// Source is the random number generator used to pick shapes.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Piece is a positioned, oriented tetromino. It is a value type: copying a
// Piece yields an independent candidate for trial moves.
type Piece struct {
	shape   Shape
	x, y    int
	color   Color
	offsets [4]Point
}

// NewPiece returns a piece of the given shape at (0, 0) in spawn orientation.
func NewPiece(s Shape) Piece {
	spec := shapeSpecs[s]
	return Piece{
		shape:   s,
		color:   spec.color,
		offsets: spec.offsets,
	}
}

func NewO() Piece { return NewPiece(ShapeO) }
func NewI() Piece { return NewPiece(ShapeI) }
func NewS() Piece { return NewPiece(ShapeS) }
func NewZ() Piece { return NewPiece(ShapeZ) }
func NewL() Piece { return NewPiece(ShapeL) }
func NewJ() Piece { return NewPiece(ShapeJ) }
func NewT() Piece { return NewPiece(ShapeT) }

// Random picks a shape uniformly. A draw of 0 lands on the default arm, which
// is T; 1 through 6 map to O, I, S, Z, L, J.
func Random(rng Source) Piece {
	switch rng.Intn(7) {
	case 1:
		return NewO()
	case 2:
		return NewI()
	case 3:
		return NewS()
	case 4:
		return NewZ()
	case 5:
		return NewL()
	case 6:
		return NewJ()
	default:
		return NewT()
	}
}

// Shape returns the piece's shape.
func (p Piece) Shape() Shape {
	return p.shape
}

// Color returns the piece's display color.
func (p Piece) Color() Color {
	return p.color
}

// Position returns the piece position on the global block grid.
func (p Piece) Position() (x, y int) {
	return p.x, p.y
}

// Offsets returns the relative block offsets in the current orientation.
func (p Piece) Offsets() [4]Point {
	return p.offsets
}

// SetPosition moves the piece to an absolute position.
func (p *Piece) SetPosition(x, y int) {
	p.x = x
	p.y = y
}

// Translate shifts the piece by (dx, dy).
func (p *Piece) Translate(dx, dy int) {
	p.x += dx
	p.y += dy
}

// RotateCW rotates every offset a quarter turn clockwise around (0, 0).
func (p *Piece) RotateCW() {
	for i, o := range p.offsets {
		p.offsets[i] = Point{X: -o.Y, Y: o.X}
	}
}

// RotateCCW rotates every offset a quarter turn counter-clockwise around (0, 0).
func (p *Piece) RotateCCW() {
	for i, o := range p.offsets {
		p.offsets[i] = Point{X: o.Y, Y: -o.X}
	}
}

// Cells returns the four occupied cells in board-local coordinates.
func (p Piece) Cells() [4]Point {
	var cells [4]Point
	for i, o := range p.offsets {
		cells[i] = Point{
			X: o.X + p.x - BoardOffsetX,
			Y: o.Y + p.y - BoardOffsetY,
		}
	}
	return cells
}

// LockInto writes the piece color into the board at each occupied cell.
// Nothing is written unless all four cells are on the board.
func (p Piece) LockInto(b *Board) error {
	cells := p.Cells()
	for _, c := range cells {
		if !b.InBounds(c.X, c.Y) {
			return fmt.Errorf("lock %s piece at (%d, %d): cell (%d, %d): %w", p.shape, p.x, p.y, c.X, c.Y, ErrOutOfBounds)
		}
	}
	for _, c := range cells {
		if err := b.SetCell(c.X, c.Y, Filled(p.color)); err != nil {
			return fmt.Errorf("lock %s piece: %w", p.shape, err)
		}
	}
	return nil
}

// WriteVertices emits one quad per block into dst, which must hold 24 vertices.
func (p Piece) WriteVertices(dst []Vertex) {
	for i, o := range p.offsets {
		writeBlock(dst[i*verticesPerQuad:(i+1)*verticesPerQuad], o.X+p.x, o.Y+p.y, p.color)
	}
}
