package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default tank battle configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Map: MapConfig{
			Size:            20,
			ObstaclePercent: 10,
		},
		Roster: RosterConfig{
			UnitsPerCategory: 2,
		},
		Clock: ClockConfig{
			MatchSeconds: 300,
			TurnSeconds:  15,
		},
		Projectile: ProjectileConfig{
			Speed:          0.2,
			DeflectDegrees: 45,
		},
		Damage: DamageConfig{
			Heavy: 25,
			Light: 50,
		},
		Policy: PolicyConfig{
			HeavyPathPercent: 50,
			LightPathPercent: 80,
		},
		PowerUps: PowerUpConfig{
			ChancePercent: 30,
			Cadence:       "turn",
		},
	}
}
