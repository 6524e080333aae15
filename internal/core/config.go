package core

// RuntimeConfig contains the settings a frontend needs to start a game.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	FPS     int   // Frames per second driving Update and View
	Seed    int64 // RNG seed; 0 means derive from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     60,
		Seed:    0,
	}
}

// GameState is the HUD-facing summary of a running game.
type GameState struct {
	Score    int
	Lines    int
	Pieces   int
	GameOver bool
	Paused   bool
}
