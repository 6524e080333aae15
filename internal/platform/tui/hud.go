package tui

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// The terminal view shows the block grid from one block left of and above the
// board to just past the preview piece.
const (
	viewOriginX = blocks.BoardOffsetX - 1
	viewOriginY = blocks.BoardOffsetY - 1
	viewBlocksW = blocks.PreviewX + 3 - viewOriginX
	viewBlocksH = blocks.BoardHeight + 2

	hudBlockX = blocks.PreviewX - 2 // HUD text column, in blocks
)

func newViewport(cellWidth int) Viewport {
	return Viewport{
		OriginX:   viewOriginX,
		OriginY:   viewOriginY,
		CellWidth: cellWidth,
	}
}

// fieldSize returns the screen size needed for the play field.
func fieldSize(cellWidth int) (w, h int) {
	return viewBlocksW * cellWidth, viewBlocksH
}

// boardRect is the screen area of the board interior.
func boardRect(vp Viewport) core.Rect {
	return vp.BlockRect(blocks.BoardOffsetX, blocks.BoardOffsetY, blocks.BoardWidth, blocks.BoardHeight)
}

// drawFrame paints the engine frame, the board outline and the side HUD.
func drawFrame(s *core.Screen, vp Viewport, verts []blocks.Vertex, state core.GameState) {
	s.Clear()
	Rasterize(s, verts, vp)

	board := boardRect(vp)
	s.DrawBox(core.NewRect(board.X-1, board.Y-1, board.W+2, board.H+2), core.ColorGray)

	hud := vp.BlockRect(hudBlockX, 0, 0, 0)
	width := s.Width() - hud.X
	label := func(row int, text string) {
		s.DrawTextColored(hud.X, row, runewidth.Truncate(text, width, "…"), core.ColorGray)
	}
	value := func(row int, text string) {
		s.DrawTextColored(hud.X, row, runewidth.Truncate(text, width, "…"), core.ColorBrightWhite)
	}

	label(1, "SCORE")
	value(2, formatScore(state.Score))
	label(blocks.PreviewY-viewOriginY-2, "NEXT")
	label(13, "LINES")
	value(14, formatScore(state.Lines))
	label(16, "PIECES")
	value(17, formatScore(state.Pieces))
}

var printer = message.NewPrinter(language.English)

// formatScore renders n with digit grouping, e.g. 12,400.
func formatScore(n int) string {
	return printer.Sprintf("%d", n)
}

// drawOverlay draws a boxed message centered over area.
func drawOverlay(s *core.Screen, area core.Rect, lines []string, c core.Color) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	w := min(inner+4, area.W)
	h := len(lines) + 2

	cx, cy := area.Center()
	box := core.NewRect(cx-w/2, cy-h/2, w, h)
	s.FillRect(box, core.Cell{Rune: ' '})
	s.DrawBox(box, c)

	for i, l := range lines {
		l = runewidth.Truncate(l, w-2, "")
		x := box.X + (w-runewidth.StringWidth(l))/2
		s.DrawTextColored(x, box.Y+1+i, l, c)
	}
}
