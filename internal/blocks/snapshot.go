package blocks

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Score        int
	Phase        Phase
	Current      Shape
	CurrentX     int
	CurrentY     int
	CurrentCells [4]Point
	Next         Shape
	Placed       bool
	Elapsed      float64
	Stats        Stats
	Board        string // Board.String() form
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	x, y := e.current.Position()
	return Snapshot{
		Score:        e.score,
		Phase:        e.phase,
		Current:      e.current.Shape(),
		CurrentX:     x,
		CurrentY:     y,
		CurrentCells: e.current.Cells(),
		Next:         e.next.Shape(),
		Placed:       e.placed,
		Elapsed:      e.elapsed,
		Stats:        e.stats,
		Board:        e.board.String(),
	}
}
