package battle

import "github.com/vovakirdan/tui-tanks/internal/core"

// PlayerSnapshot is the per-player part of a Snapshot.
type PlayerSnapshot struct {
	Pending    PowerUp
	Armed      []PowerUp
	BonusTurns int
	Survivors  int
	ActionUsed bool
	HasShot    bool
}

// Snapshot captures the observable match state for renderers and
// determinism tests.
type Snapshot struct {
	Tick  uint64
	Turn  int
	Grid  []string
	Units []Unit
	Route Route

	HasProjectile bool
	Projectile    core.Vec2

	Active   Player
	Selected int // -1 when nothing is selected
	Mode     Mode
	Strategy Strategy // meaningful in ModeAwaitingMove

	RemainingMatch float64
	RemainingTurn  float64

	Players [2]PlayerSnapshot

	Over    bool
	Outcome Outcome
	Reason  EndReason
}

// Snapshot returns a copy of the current state.
func (m *Match) Snapshot() Snapshot {
	s1, s2 := m.Survivors()
	survivors := [2]int{s1, s2}

	snap := Snapshot{
		Tick:           m.tick,
		Turn:           m.turn,
		Grid:           m.grid.Lines(),
		Units:          m.Units(),
		Route:          m.Route(),
		Active:         m.active,
		Selected:       m.selected,
		Mode:           m.mode,
		Strategy:       m.strategy,
		RemainingMatch: m.RemainingSeconds(),
		RemainingTurn:  m.RemainingTurnSeconds(),
		Over:           m.Over(),
		Outcome:        m.outcome,
		Reason:         m.reason,
	}
	snap.Projectile, snap.HasProjectile = m.Projectile()

	for i, ps := range m.players {
		snap.Players[i] = PlayerSnapshot{
			Pending:    ps.pending,
			Armed:      ps.armed.List(),
			BonusTurns: ps.bonusTurns,
			Survivors:  survivors[i],
			ActionUsed: ps.actionUsed,
			HasShot:    ps.hasShot,
		}
	}
	return snap
}
