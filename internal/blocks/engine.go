package blocks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Phase is the lifecycle state of a game.
type Phase string

const (
	PhaseRunning  Phase = "running"
	PhaseGameOver Phase = "game_over"
)

// Stats counts events over the lifetime of one game.
type Stats struct {
	PiecesLocked int
	RowsCleared  int
	Ticks        int
}

// Engine owns the board, the falling piece, the preview piece, the score and
// the gravity clock. All methods run on the caller's goroutine; the engine is
// not safe for concurrent use.
type Engine struct {
	rng    Source
	logger *log.Logger

	board   *Board
	current Piece
	next    Piece

	score   int
	elapsed float64 // Seconds accumulated since the last tick
	placed  bool    // Current piece is locked and awaits resolution
	phase   Phase
	stats   Stats

	frame []Vertex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine events (locks, clears, game over) to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New starts a game: empty board, a random current piece at the spawn location
// and a random next piece at the preview location.
func New(rng Source, opts ...Option) *Engine {
	e := &Engine{
		rng:    rng,
		logger: log.New(io.Discard),
		board:  NewBoard(),
		phase:  PhaseRunning,
	}
	for _, opt := range opts {
		opt(e)
	}

	// The preview is drawn first.
	e.next = e.preview()
	e.current = Random(e.rng)
	e.current.SetPosition(e.board.SpawnLocation())
	e.frame = make([]Vertex, VertexCount(e.board.Width(), e.board.Height()))

	e.logger.Debug("game started", "current", e.current.Shape(), "next", e.next.Shape())
	return e
}

// preview draws a fresh piece parked at the preview location.
func (e *Engine) preview() Piece {
	p := Random(e.rng)
	p.SetPosition(PreviewX, PreviewY)
	return p
}

// Board returns the locked-cell grid. Callers must not mutate it.
func (e *Engine) Board() *Board {
	return e.board
}

// Current returns a copy of the falling piece.
func (e *Engine) Current() Piece {
	return e.current
}

// Next returns a copy of the preview piece.
func (e *Engine) Next() Piece {
	return e.next
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool {
	return e.phase == PhaseGameOver
}

// Stats returns lifetime counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// HandleKey applies a key event and reports whether the engine consumed it.
// Releases and unknown keys are never consumed, nor is anything after game over.
// While a locked piece awaits resolution, movement keys are consumed without effect.
func (e *Engine) HandleKey(k Key, pressed bool) bool {
	if !pressed || e.phase == PhaseGameOver {
		return false
	}
	switch k {
	case KeyLeft, KeyRight, KeyDown, KeyRotateCW, KeyRotateCCW:
	default:
		return false
	}
	if e.placed {
		return true
	}

	switch k {
	case KeyLeft:
		e.TryMove(-1, 0)
	case KeyRight:
		e.TryMove(1, 0)
	case KeyDown:
		e.hardDrop()
	case KeyRotateCW:
		e.TryRotateCW()
	case KeyRotateCCW:
		e.TryRotateCCW()
	}
	return true
}

// Update advances the gravity clock by elapsed seconds, firing at most one tick,
// then resolves a locked piece: the next piece spawns (ending the game if its
// spot is blocked), a new preview is drawn, full rows clear and score is added.
// Negative durations are ignored.
func (e *Engine) Update(elapsed float64) {
	if e.phase == PhaseGameOver {
		return
	}
	if elapsed > 0 {
		e.elapsed += elapsed
	}
	if e.elapsed > TickInterval {
		e.Tick()
		e.elapsed -= TickInterval
	}
	if e.placed {
		e.resolvePlacement()
	}
}

// Tick performs one gravity step: the current piece moves down one row, or
// locks in place if it cannot.
func (e *Engine) Tick() {
	if e.phase == PhaseGameOver || e.placed {
		return
	}
	e.stats.Ticks++
	if !e.TryMove(0, 1) {
		e.lock()
	}
}

// IsPositionLegal reports whether p lies fully on the board over empty cells.
func (e *Engine) IsPositionLegal(p Piece) bool {
	cells := p.Cells()
	for _, c := range cells {
		if !e.board.InBounds(c.X, c.Y) {
			return false
		}
	}
	return e.board.AreCellsEmpty(cells[:])
}

// TryMove shifts the current piece by (dx, dy) if the result is legal.
func (e *Engine) TryMove(dx, dy int) bool {
	candidate := e.current
	candidate.Translate(dx, dy)
	return e.accept(candidate)
}

// TryRotateCW rotates the current piece clockwise if the result is legal.
// There are no wall kicks.
func (e *Engine) TryRotateCW() bool {
	candidate := e.current
	candidate.RotateCW()
	return e.accept(candidate)
}

// TryRotateCCW rotates the current piece counter-clockwise if the result is legal.
func (e *Engine) TryRotateCCW() bool {
	candidate := e.current
	candidate.RotateCCW()
	return e.accept(candidate)
}

func (e *Engine) accept(candidate Piece) bool {
	if e.placed || !e.IsPositionLegal(candidate) {
		return false
	}
	e.current = candidate
	return true
}

// hardDrop moves the current piece down until blocked and locks it.
func (e *Engine) hardDrop() {
	for e.TryMove(0, 1) {
	}
	e.lock()
}

func (e *Engine) lock() {
	if err := e.current.LockInto(e.board); err != nil {
		// The current piece is only ever moved to legal positions.
		panic(fmt.Sprintf("blocks: locking a legal piece failed: %v", err))
	}
	e.placed = true
	e.stats.PiecesLocked++

	x, y := e.current.Position()
	e.logger.Debug("piece locked", "shape", e.current.Shape(), "x", x, "y", y)
}

func (e *Engine) resolvePlacement() {
	e.placed = false

	e.current = e.next
	e.current.SetPosition(e.board.SpawnLocation())
	if !e.IsPositionLegal(e.current) {
		e.phase = PhaseGameOver
		e.logger.Info("game over", "score", e.score, "pieces", e.stats.PiecesLocked, "rows", e.stats.RowsCleared)
		return
	}
	e.next = e.preview()

	rows := e.board.ClearCompletedRows()
	if rows > 0 {
		e.stats.RowsCleared += rows
		e.score += RowBonus * rows
		e.logger.Debug("rows cleared", "rows", rows, "score", e.score)
	}
}

// Render writes the full frame into a buffer owned by the engine and returns it.
// The layout is: background quad, one quad per board cell in row-major order,
// four quads for the current piece, four quads for the next piece. The returned
// slice is overwritten by the following Render call.
func (e *Engine) Render() []Vertex {
	w, h := e.board.Width(), e.board.Height()
	if len(e.frame) != VertexCount(w, h) {
		e.frame = make([]Vertex, VertexCount(w, h))
	}

	cellsEnd := verticesPerQuad + verticesPerQuad*w*h
	writeBackground(e.frame[:verticesPerQuad], w, h)
	e.board.WriteVertices(e.frame[verticesPerQuad:cellsEnd])
	e.current.WriteVertices(e.frame[cellsEnd : cellsEnd+verticesPerPiece])
	e.next.WriteVertices(e.frame[cellsEnd+verticesPerPiece:])
	return e.frame
}
