package tanks

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
)

// Describe returns a short human-readable line for an event.
func Describe(e battle.Event) string {
	switch e.Kind {
	case battle.EventTurnStarted:
		return fmt.Sprintf("%s's turn", e.Player)
	case battle.EventUnitSelected:
		return fmt.Sprintf("Tank %d selected", e.UnitID)
	case battle.EventMoveDrawn:
		if e.Strategy == battle.StrategyRandom {
			return "Engine stalled: random step"
		}
		return fmt.Sprintf("%s route: pick a destination", e.Strategy)
	case battle.EventRouteFound:
		return fmt.Sprintf("Moving %d cells to %s", e.Steps, e.Target)
	case battle.EventNoRoute:
		return fmt.Sprintf("No route to %s", e.Target)
	case battle.EventArrived:
		return fmt.Sprintf("Tank %d arrived at %s", e.UnitID, e.Cell)
	case battle.EventShotFired:
		return fmt.Sprintf("Tank %d fires at %s", e.UnitID, e.Target)
	case battle.EventUnitHit:
		return fmt.Sprintf("Hit tank %d for %d (%d left)", e.UnitID, e.Damage, e.Health)
	case battle.EventUnitDestroyed:
		return fmt.Sprintf("Tank %d destroyed!", e.UnitID)
	case battle.EventPowerUpGranted:
		return fmt.Sprintf("%s got %s", e.Player, e.PowerUp)
	case battle.EventPowerUpActivated:
		return fmt.Sprintf("%s activated %s", e.Player, e.PowerUp)
	case battle.EventMatchEnded:
		return fmt.Sprintf("Match over: %s", e.Outcome)
	default:
		return e.Kind.String()
	}
}

// LogEvents writes match events to logger as structured records.
// Routine events go to debug level, hits and the result to info.
func LogEvents(logger *log.Logger, events []battle.Event) {
	if logger == nil {
		return
	}
	for _, e := range events {
		kv := []any{"turn", e.Turn, "t", fmt.Sprintf("%.2f", e.Time)}

		switch e.Kind {
		case battle.EventTurnStarted:
			logger.Debug(e.Kind, append(kv, "player", e.Player)...)
		case battle.EventUnitSelected, battle.EventArrived:
			logger.Debug(e.Kind, append(kv, "unit", e.UnitID, "cell", e.Cell)...)
		case battle.EventMoveDrawn:
			logger.Debug(e.Kind, append(kv, "unit", e.UnitID, "strategy", e.Strategy)...)
		case battle.EventRouteFound:
			logger.Debug(e.Kind, append(kv, "unit", e.UnitID, "from", e.Cell, "to", e.Target, "steps", e.Steps)...)
		case battle.EventNoRoute:
			logger.Debug(e.Kind, append(kv, "unit", e.UnitID, "from", e.Cell, "to", e.Target)...)
		case battle.EventShotFired:
			logger.Info(e.Kind, append(kv, "unit", e.UnitID, "from", e.Cell, "at", e.Target)...)
		case battle.EventUnitHit:
			logger.Info(e.Kind, append(kv, "unit", e.UnitID, "cell", e.Cell, "damage", e.Damage, "health", e.Health)...)
		case battle.EventUnitDestroyed:
			logger.Info(e.Kind, append(kv, "unit", e.UnitID, "owner", e.Player)...)
		case battle.EventPowerUpGranted, battle.EventPowerUpActivated:
			logger.Info(e.Kind, append(kv, "player", e.Player, "powerup", e.PowerUp)...)
		case battle.EventMatchEnded:
			logger.Info(e.Kind, append(kv, "outcome", e.Outcome, "reason", e.Reason)...)
		default:
			logger.Debug(e.Kind, kv...)
		}
	}
}
