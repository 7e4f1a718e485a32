package core

// RuntimeConfig is what the platform hands a scene on Reset.
type RuntimeConfig struct {
	ScreenW  int    // screen width in characters
	ScreenH  int    // screen height in characters
	TickRate int    // simulation ticks per second
	Seed     int64  // RNG seed; 0 lets the platform pick one
	LevelID  string // level to load; empty means the scene's default
}

// DefaultConfig returns the runtime defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// SceneState is the externally visible status of a scene.
type SceneState struct {
	Ticks  int
	Score  int
	Over   bool
	Paused bool
}

// StepResult is returned by Scene.Step after each tick.
type StepResult struct {
	State SceneState
}
