// Package config provides YAML-based match configuration loading and
// difficulty presets for the tanks platform.
package config

// TanksConfig contains all configuration for a tank battle.
type TanksConfig struct {
	Map        MapConfig        `yaml:"map"`
	Roster     RosterConfig     `yaml:"roster"`
	Clock      ClockConfig      `yaml:"clock"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Damage     DamageConfig     `yaml:"damage"`
	Policy     PolicyConfig     `yaml:"policy"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
}

// MapConfig defines battlefield generation.
type MapConfig struct {
	Size            int `yaml:"size"`
	ObstaclePercent int `yaml:"obstacle_percent"`
}

// RosterConfig defines how many tanks each side deploys.
type RosterConfig struct {
	UnitsPerCategory int `yaml:"units_per_category"`
}

// ClockConfig defines the match and turn time limits in seconds.
type ClockConfig struct {
	MatchSeconds float64 `yaml:"match_seconds"`
	TurnSeconds  float64 `yaml:"turn_seconds"`
}

// ProjectileConfig defines shot flight.
type ProjectileConfig struct {
	Speed          float64 `yaml:"speed"`           // cells per tick
	DeflectDegrees float64 `yaml:"deflect_degrees"` // max bounce deviation
}

// DamageConfig defines damage per hit by durability class.
type DamageConfig struct {
	Heavy int `yaml:"heavy"`
	Light int `yaml:"light"`
}

// PolicyConfig defines the chance a move request gets pathfinding
// instead of a random step.
type PolicyConfig struct {
	HeavyPathPercent int `yaml:"heavy_path_percent"`
	LightPathPercent int `yaml:"light_path_percent"`
}

// PowerUpConfig defines power-up grants.
type PowerUpConfig struct {
	ChancePercent int    `yaml:"chance_percent"`
	Cadence       string `yaml:"cadence"` // "turn" or "frame"
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset returns the preset with the given name.
func ParsePreset(name string) (DifficultyPreset, bool) {
	for _, p := range Presets {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}
