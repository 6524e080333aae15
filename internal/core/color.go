package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// paletteRGB approximates how each palette entry looks on a typical dark terminal.
// Only entries listed here take part in nearest-color matching.
var paletteRGB = map[Color][3]float32{
	ColorBrightRed:     {1.0, 0.0, 0.0},
	ColorBrightGreen:   {0.0, 1.0, 0.0},
	ColorBrightYellow:  {1.0, 1.0, 0.0},
	ColorBrightBlue:    {0.0, 0.0, 1.0},
	ColorBrightMagenta: {1.0, 0.0, 1.0},
	ColorBrightCyan:    {0.0, 1.0, 1.0},
	ColorBrightWhite:   {1.0, 1.0, 1.0},
	ColorOrange:        {1.0, 0.55, 0.0},
	ColorGray:          {0.55, 0.55, 0.55},
	ColorDarkGray:      {0.25, 0.25, 0.25},
}

// paletteOrder fixes the scan order so ties resolve deterministically.
var paletteOrder = []Color{
	ColorBrightRed, ColorBrightGreen, ColorBrightYellow, ColorBrightBlue,
	ColorBrightMagenta, ColorBrightCyan, ColorBrightWhite, ColorOrange,
	ColorGray, ColorDarkGray,
}

// NearestColor maps an RGB color with components in [0, 1] to the closest
// palette entry by squared Euclidean distance.
func NearestColor(r, g, b float32) Color {
	best := ColorDefault
	bestDist := float32(-1)
	for _, c := range paletteOrder {
		rgb := paletteRGB[c]
		dr, dg, db := r-rgb[0], g-rgb[1], b-rgb[2]
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
