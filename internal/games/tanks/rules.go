package tanks

import (
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
)

// Package-level variables for config/difficulty (set by the CLI before
// the game is created).
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Scenario describes a registered battle setup.
type Scenario struct {
	ID          string
	Title       string
	Description string

	// ObstaclePercent overrides the configured density when non-negative.
	ObstaclePercent int
}

// Scenarios lists the registered battle setups.
var Scenarios = []Scenario{
	{ID: "tanks", Title: "Tanks", Description: "Classic battle on a generated field", ObstaclePercent: -1},
	{ID: "tanks_open", Title: "Tanks (Open Field)", Description: "No obstacles, pure gunnery", ObstaclePercent: 0},
	{ID: "tanks_dense", Title: "Tanks (Dense)", Description: "Heavy cover, ricochets everywhere", ObstaclePercent: 25},
}

// LookupScenario returns the scenario with the given ID.
func LookupScenario(id string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// RulesFromConfig maps a loaded configuration onto match rules.
func RulesFromConfig(cfg config.TanksConfig) battle.Rules {
	return battle.Rules{
		GridSize:         cfg.Map.Size,
		ObstaclePercent:  cfg.Map.ObstaclePercent,
		UnitsPerCategory: cfg.Roster.UnitsPerCategory,
		MatchSeconds:     cfg.Clock.MatchSeconds,
		TurnSeconds:      cfg.Clock.TurnSeconds,
		Ballistics: battle.Ballistics{
			Speed:          cfg.Projectile.Speed,
			DeflectDegrees: cfg.Projectile.DeflectDegrees,
			Damage:         battle.Damage{Heavy: cfg.Damage.Heavy, Light: cfg.Damage.Light},
		},
		HeavyPathChance: cfg.Policy.HeavyPathPercent,
		LightPathChance: cfg.Policy.LightPathPercent,
		PowerUpChance:   cfg.PowerUps.ChancePercent,
		PowerUpCadence:  battle.Cadence(cfg.PowerUps.Cadence),
	}
}

// ScenarioRules loads the configuration, applies the difficulty preset and
// the scenario's overrides, and validates the result.
func ScenarioRules(s Scenario) (battle.Rules, error) {
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		return battle.Rules{}, err
	}
	if difficultyPreset != "" {
		preset, ok := config.ParsePreset(difficultyPreset)
		if !ok {
			return battle.Rules{}, fmt.Errorf("tanks: unknown difficulty %q", difficultyPreset)
		}
		config.ApplyTanksPreset(&cfg, preset)
	}

	rules := RulesFromConfig(cfg)
	if s.ObstaclePercent >= 0 {
		rules.ObstaclePercent = s.ObstaclePercent
	}
	if err := rules.Validate(); err != nil {
		return battle.Rules{}, fmt.Errorf("tanks: %s: %w", s.ID, err)
	}
	return rules, nil
}
