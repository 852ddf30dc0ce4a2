package battle

// EventKind identifies what happened in the match.
type EventKind uint8

const (
	EventTurnStarted EventKind = iota
	EventUnitSelected
	EventMoveDrawn
	EventRouteFound
	EventNoRoute
	EventArrived
	EventShotFired
	EventUnitHit
	EventUnitDestroyed
	EventPowerUpGranted
	EventPowerUpActivated
	EventMatchEnded
)

var eventNames = [...]string{
	EventTurnStarted:      "turn started",
	EventUnitSelected:     "unit selected",
	EventMoveDrawn:        "move drawn",
	EventRouteFound:       "route found",
	EventNoRoute:          "no route",
	EventArrived:          "arrived",
	EventShotFired:        "shot fired",
	EventUnitHit:          "unit hit",
	EventUnitDestroyed:    "unit destroyed",
	EventPowerUpGranted:   "power-up granted",
	EventPowerUpActivated: "power-up activated",
	EventMatchEnded:       "match ended",
}

// String returns the event name.
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Outcome is the result of a match.
type Outcome uint8

const (
	OutcomeNone Outcome = iota // still running
	OutcomePlayer1
	OutcomePlayer2
	OutcomeDraw
)

// String returns the outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomePlayer1:
		return "player 1 wins"
	case OutcomePlayer2:
		return "player 2 wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "in progress"
	}
}

// EndReason tells why a match ended.
type EndReason string

const (
	EndNone       EndReason = ""
	EndClock      EndReason = "clock"
	EndEliminated EndReason = "eliminated"
)

// Event is a notable state change, collected during a call and drained
// with Match.Events. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Turn     int
	Time     float64 // match seconds elapsed
	Player   Player
	UnitID   int
	Cell     Cell
	Target   Cell
	Strategy Strategy
	Steps    int
	Damage   int
	Health   int
	PowerUp  PowerUp
	Outcome  Outcome
	Reason   EndReason
}
