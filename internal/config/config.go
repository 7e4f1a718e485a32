// Package config provides YAML-based simulation configuration and the
// difficulty ramp applied to agent speeds.
package config

// SimConfig contains all tunables of the simulation.
type SimConfig struct {
	TickRate   int              `yaml:"tick_rate"`
	Movement   MovementConfig   `yaml:"movement"`
	Seekers    SeekerConfig     `yaml:"seekers"`
	Wander     WanderConfig     `yaml:"wander"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MovementConfig defines agent speeds in world units per second and the
// movement tolerances.
type MovementConfig struct {
	PlayerSpeed   float64 `yaml:"player_speed"`
	SeekerSpeed   float64 `yaml:"seeker_speed"`
	WandererSpeed float64 `yaml:"wanderer_speed"`
	Near          float64 `yaml:"near"`         // sub-step length and goal tolerance
	StuckFrames   int     `yaml:"stuck_frames"` // non-moving frames before a path is dropped
}

// SeekerConfig defines how seekers chase the player.
type SeekerConfig struct {
	RepathTicks int     `yaml:"repath_ticks"` // minimum ticks between re-paths
	CatchRadius float64 `yaml:"catch_radius"`
}

// WanderConfig defines the goal window of wandering agents.
type WanderConfig struct {
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	Bias       float64 `yaml:"bias"` // 0..1 pull toward the border ahead
	PauseTicks int     `yaml:"pause_ticks"`
}

// DifficultyConfig defines how agent speed scales over a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty progression.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ticks at which max difficulty is reached
}

// ScalingConfig defines how parameters scale with difficulty.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyHard:
		return 0.6
	default:
		return 0.3
	}
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}
