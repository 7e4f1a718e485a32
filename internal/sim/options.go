package sim

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilenav/internal/config"
)

// Options configures scenes created through the registry.
type Options struct {
	Config    config.SimConfig
	LevelDir  string      // searched before the built-in levels
	Autopilot bool        // the player wanders instead of reading input
	Logger    *log.Logger // debug traces; nil discards them
}

var (
	optionsMu sync.RWMutex
	options   = Options{Config: config.DefaultSimConfig()}
)

// Configure sets the options used by scenes created afterwards.
func Configure(o Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	options = o
}

func currentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return options
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}
