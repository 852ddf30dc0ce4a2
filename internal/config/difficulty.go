package config

// presetTuning holds the values a preset overrides.
type presetTuning struct {
	obstaclePercent int
	turnSeconds     float64
	powerUpChance   int
}

var presetTable = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {obstaclePercent: 5, turnSeconds: 20, powerUpChance: 40},
	DifficultyNormal: {obstaclePercent: 10, turnSeconds: 15, powerUpChance: 30},
	DifficultyHard:   {obstaclePercent: 20, turnSeconds: 10, powerUpChance: 20},
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the loaded values untouched.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	t, ok := presetTable[preset]
	if !ok {
		return
	}
	cfg.Map.ObstaclePercent = t.obstaclePercent
	cfg.Clock.TurnSeconds = t.turnSeconds
	cfg.PowerUps.ChancePercent = t.powerUpChance
}
