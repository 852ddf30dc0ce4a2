package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	GameOver bool   // Whether the match has ended
	Paused   bool   // Whether the game is paused
	Status   string // One-line summary for window titles and logs
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Winner values stored in a MatchReport.
const (
	WinnerDraw    = 0
	WinnerPlayer1 = 1
	WinnerPlayer2 = 2
)

// MatchReport summarizes a finished match for the history ledger.
type MatchReport struct {
	Scenario     string
	Seed         int64
	Winner       int    // WinnerDraw, WinnerPlayer1 or WinnerPlayer2
	Survivors1   int    // Units left to player 1
	Survivors2   int    // Units left to player 2
	EndReason    string // "clock" or "eliminated"
	DurationSecs float64
	Turns        int
}

// WinnerLabel returns a display label for the report's winner.
func (r MatchReport) WinnerLabel() string {
	switch r.Winner {
	case WinnerPlayer1:
		return "Player 1"
	case WinnerPlayer2:
		return "Player 2"
	default:
		return "Draw"
	}
}
