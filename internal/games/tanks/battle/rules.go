package battle

import (
	"errors"
	"fmt"
)

// ErrInvalidRules is wrapped by Rules.Validate failures.
var ErrInvalidRules = errors.New("battle: invalid rules")

// Cadence controls when the power-up grant roll happens.
type Cadence string

const (
	CadenceTurn  Cadence = "turn"  // once at the start of every turn
	CadenceFrame Cadence = "frame" // on every tick
)

// Rules configures a match.
type Rules struct {
	GridSize         int
	ObstaclePercent  int
	UnitsPerCategory int

	MatchSeconds float64
	TurnSeconds  float64

	Ballistics Ballistics

	// Percent chance that a move request uses targeted pathfinding
	// instead of a random step.
	HeavyPathChance int
	LightPathChance int

	PowerUpChance  int // percent per roll
	PowerUpCadence Cadence
}

// DefaultRules returns the classic match settings.
func DefaultRules() Rules {
	return Rules{
		GridSize:         20,
		ObstaclePercent:  10,
		UnitsPerCategory: 2,
		MatchSeconds:     300,
		TurnSeconds:      15,
		Ballistics: Ballistics{
			Speed:          0.2,
			DeflectDegrees: 45,
			Damage:         Damage{Heavy: 25, Light: 50},
		},
		HeavyPathChance: 50,
		LightPathChance: 80,
		PowerUpChance:   30,
		PowerUpCadence:  CadenceTurn,
	}
}

// Validate checks that every setting is usable.
func (r Rules) Validate() error {
	switch {
	case r.GridSize < 2:
		return fmt.Errorf("%w: grid size %d, need at least 2", ErrInvalidRules, r.GridSize)
	case !percent(r.ObstaclePercent):
		return fmt.Errorf("%w: obstacle percent %d out of [0,100]", ErrInvalidRules, r.ObstaclePercent)
	case r.UnitsPerCategory < 0:
		return fmt.Errorf("%w: negative units per category", ErrInvalidRules)
	case r.MatchSeconds <= 0 || r.TurnSeconds <= 0:
		return fmt.Errorf("%w: clocks must be positive", ErrInvalidRules)
	case r.Ballistics.Speed <= 0:
		return fmt.Errorf("%w: projectile speed must be positive", ErrInvalidRules)
	case r.Ballistics.Damage.Heavy < 0 || r.Ballistics.Damage.Light < 0:
		return fmt.Errorf("%w: negative damage", ErrInvalidRules)
	case !percent(r.HeavyPathChance) || !percent(r.LightPathChance):
		return fmt.Errorf("%w: path chances %d/%d out of [0,100]", ErrInvalidRules, r.HeavyPathChance, r.LightPathChance)
	case !percent(r.PowerUpChance):
		return fmt.Errorf("%w: power-up chance %d out of [0,100]", ErrInvalidRules, r.PowerUpChance)
	case r.PowerUpCadence != CadenceTurn && r.PowerUpCadence != CadenceFrame:
		return fmt.Errorf("%w: unknown power-up cadence %q", ErrInvalidRules, r.PowerUpCadence)
	}
	return nil
}

func percent(v int) bool {
	return v >= 0 && v <= 100
}

// strategyFor returns the targeted strategy of a category.
func strategyFor(c Category) Strategy {
	if c.Heavy() {
		return StrategyShortest
	}
	return StrategyWeighted
}

func (r Rules) pathChance(c Category) int {
	if c.Heavy() {
		return r.HeavyPathChance
	}
	return r.LightPathChance
}
