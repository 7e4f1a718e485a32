package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSim loads the simulation configuration. Files only override the
// fields they set.
// Search order: customPath -> ~/.tilenav/configs/sim.yaml -> ./configs/sim.yaml -> embedded default
func LoadSim(customPath string) (SimConfig, error) {
	cfg := DefaultSimConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.normalized(), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "sim.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.normalized(), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		return DefaultSimConfig(), nil
	}
	return cfg.normalized(), nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilenav", "configs", filename)
}

// ApplySimPreset modifies the config based on a difficulty preset.
func ApplySimPreset(cfg *SimConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Seekers.RepathTicks = 30
		cfg.Movement.SeekerSpeed *= 0.8
	case DifficultyHard:
		cfg.Seekers.RepathTicks = 8
	}
}

// normalized replaces unusable values with the defaults.
func (c SimConfig) normalized() SimConfig {
	def := DefaultSimConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.Movement.Near <= 0 {
		c.Movement.Near = def.Movement.Near
	}
	if c.Movement.StuckFrames <= 0 {
		c.Movement.StuckFrames = def.Movement.StuckFrames
	}
	if c.Seekers.RepathTicks <= 0 {
		c.Seekers.RepathTicks = def.Seekers.RepathTicks
	}
	if c.Wander.Cols <= 0 {
		c.Wander.Cols = def.Wander.Cols
	}
	if c.Wander.Rows <= 0 {
		c.Wander.Rows = def.Wander.Rows
	}
	return c
}
