package window

import (
	"image"
	"image/color"
)

// textureSize is the edge length of the block texture in texels.
const textureSize = 16

// bevelImage draws one bevelled block in grayscale: a light top-left rim, a
// dark bottom-right rim and a mid-gray face. Vertex colors tint it, and the
// board background tiles it through repeat addressing.
func bevelImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	rim := max(size/8, 1)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var v uint8
			switch {
			case x < rim || y < rim:
				v = 0xff
			case x >= size-rim || y >= size-rim:
				v = 0x70
			default:
				v = 0xc8
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return img
}
