package tanks

import "github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Seed     int64
	Cursor   battle.Cell
	Paused   bool
	TooSmall bool
	Message  string
	Match    battle.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Seed:     g.seed,
		Cursor:   g.cursor,
		Paused:   g.paused,
		TooSmall: g.tooSmall,
		Message:  g.message,
	}
	if g.match != nil {
		s.Match = g.match.Snapshot()
	}
	return s
}
