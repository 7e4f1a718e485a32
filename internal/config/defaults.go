package config

import (
	_ "embed"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the built-in configuration, used when even the
// embedded YAML cannot be parsed.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		TickRate: 30,
		Movement: MovementConfig{
			PlayerSpeed:   64,
			SeekerSpeed:   44,
			WandererSpeed: 32,
			Near:          2,
			StuckFrames:   2,
		},
		Seekers: SeekerConfig{
			RepathTicks: 15,
			CatchRadius: 8,
		},
		Wander: WanderConfig{
			Cols:       4,
			Rows:       4,
			Bias:       0.6,
			PauseTicks: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 1800,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
