// Package window is the desktop frontend. It draws the engine's vertex buffer
// directly with ebiten triangles.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Logical screen size. The window is this size times the configured scale.
const (
	ScreenWidth  = 480
	ScreenHeight = 272
)

var clearColor = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

// keyBindings maps physical keys to actions, checked in this order each frame.
var keyBindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyLeft, core.ActionLeft},
	{ebiten.KeyRight, core.ActionRight},
	{ebiten.KeyDown, core.ActionDrop},
	{ebiten.KeyX, core.ActionRotateCW},
	{ebiten.KeyZ, core.ActionRotateCCW},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyEscape, core.ActionQuit},
}

// Game implements ebiten.Game around one engine.
type Game struct {
	logger *log.Logger
	seed   int64
	games  int

	engine *blocks.Engine
	paused bool
	last   time.Time
	input  core.InputFrame

	texture  *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewGame starts the first game. A zero seed is replaced with a clock-derived one.
func NewGame(seed int64, logger *log.Logger) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		logger: logger,
		seed:   seed,
		input:  core.NewInputFrame(),
	}
	g.restart()
	return g
}

func (g *Game) restart() {
	g.engine = blocks.New(rand.New(rand.NewSource(g.seed+int64(g.games))), blocks.WithLogger(g.logger))
	g.games++
	g.paused = false
}

// Update reads input and advances the engine by the wall-clock time since the
// previous Update.
func (g *Game) Update() error {
	g.input.Clear()
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.input.Add(b.action)
		}
	}

	now := time.Now()
	var dt float64
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	return g.step(g.input, dt)
}

// step applies one frame of input and elapsed time. It returns
// ebiten.Termination when the player quits.
func (g *Game) step(in core.InputFrame, dt float64) error {
	for _, a := range in.Actions() {
		switch a {
		case core.ActionQuit:
			// Escape reaches the engine first and only quits if left unhandled.
			if !g.engine.HandleKey(a.EngineKey(), true) {
				return ebiten.Termination
			}
		case core.ActionPause:
			if !g.engine.GameOver() {
				g.paused = !g.paused
			}
		case core.ActionRestart:
			if g.engine.GameOver() {
				g.restart()
			}
		default:
			if !g.paused {
				g.engine.HandleKey(a.EngineKey(), true)
			}
		}
	}

	if !g.paused {
		g.engine.Update(dt)
	}
	return nil
}

// Draw renders the engine frame and the text overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.texture == nil {
		g.texture = ebiten.NewImageFromImageWithOptions(bevelImage(textureSize), &ebiten.NewImageFromImageOptions{
			Unmanaged: true,
		})
	}

	frame := g.engine.Render()
	g.vertices = convertVertices(g.vertices, frame, textureSize)
	if len(g.indices) != len(g.vertices) {
		g.indices = sequentialIndices(len(g.vertices))
	}

	screen.Fill(clearColor)
	screen.DrawTriangles(g.vertices, g.indices, g.texture, &ebiten.DrawTrianglesOptions{
		Address: ebiten.AddressRepeat,
	})

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", g.engine.Score()), 340, 40)
	ebitenutil.DebugPrintAt(screen, "Next Shape:", 340, 60)

	switch {
	case g.engine.GameOver():
		printCentered(screen, "GAME OVER", 124)
		printCentered(screen, "R to restart", 140)
	case g.paused:
		printCentered(screen, "PAUSED", 130)
	}
}

// printCentered prints text centered over the board with the 6px debug font.
func printCentered(screen *ebiten.Image, text string, y int) {
	const boardCenterX = (blocks.BoardOffsetX + blocks.BoardWidth/2) * blocks.BlockSize
	ebitenutil.DebugPrintAt(screen, text, boardCenterX-len(text)*3, y)
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.WindowConfig, seed int64, logger *log.Logger) error {
	ebiten.SetWindowSize(ScreenWidth*cfg.Scale, ScreenHeight*cfg.Scale)
	ebiten.SetWindowTitle(cfg.Title)

	g := NewGame(seed, logger)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	if logger != nil {
		logger.Info("window closed", "score", g.engine.Score(), "games", g.games)
	}
	return nil
}
