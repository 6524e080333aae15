package blocks

import (
	"encoding/binary"
	"math"
)

// Vertex is one renderer vertex. Field order is part of the wire layout:
// position, texture coordinate, color.
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
	Color     [4]float32
}

const (
	verticesPerQuad  = 6
	verticesPerPiece = 4 * verticesPerQuad

	// VertexStride is the encoded size of a Vertex in bytes.
	VertexStride = 9 * 4
)

// VertexCount is the exact frame size for a board of the given dimensions:
// background, one quad per cell, current piece, next piece.
func VertexCount(width, height int) int {
	return verticesPerQuad + verticesPerQuad*width*height + 2*verticesPerPiece
}

// writeQuad fills six vertices forming two triangles over the rectangle
// (x, y)-(x+w, y+h). Texture coordinates span (0, 0)-(tu, tv).
func writeQuad(dst []Vertex, x, y, z, w, h, tu, tv float32, c Color) {
	dst[0] = Vertex{Position: [3]float32{x, y, z}, TexCoords: [2]float32{0, 0}, Color: c}
	dst[1] = Vertex{Position: [3]float32{x + w, y, z}, TexCoords: [2]float32{tu, 0}, Color: c}
	dst[2] = Vertex{Position: [3]float32{x + w, y + h, z}, TexCoords: [2]float32{tu, tv}, Color: c}
	dst[3] = Vertex{Position: [3]float32{x + w, y + h, z}, TexCoords: [2]float32{tu, tv}, Color: c}
	dst[4] = Vertex{Position: [3]float32{x, y + h, z}, TexCoords: [2]float32{0, tv}, Color: c}
	dst[5] = Vertex{Position: [3]float32{x, y, z}, TexCoords: [2]float32{0, 0}, Color: c}
}

// writeBlock fills one unit block at global grid position (gx, gy).
func writeBlock(dst []Vertex, gx, gy int, c Color) {
	const size = float32(BlockSize)
	writeQuad(dst, float32(gx)*size, float32(gy)*size, 0, size, size, 1, 1, c)
}

// writeBackground fills the quad behind a width x height board.
func writeBackground(dst []Vertex, width, height int) {
	const size = float32(BlockSize)
	writeQuad(dst,
		size*BoardOffsetX, size*BoardOffsetY, -1,
		size*float32(width), size*float32(height),
		float32(width), float32(height),
		backgroundTint,
	)
}

// AppendVertices appends the little-endian float32 encoding of vs to dst,
// VertexStride bytes per vertex.
func AppendVertices(dst []byte, vs []Vertex) []byte {
	for _, v := range vs {
		for _, f := range v.Position {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.TexCoords {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.Color {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}
