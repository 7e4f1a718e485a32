package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/registry"
	"github.com/vovakirdan/tilenav/internal/storage"
)

// LevelChangedMsg is sent when a watched level file was written.
type LevelChangedMsg struct {
	Path string
}

// recorder is implemented by scenes that can describe their run for storage.
type recorder interface {
	Record() storage.Run
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// Model is the Bubble Tea model running one scene.
type Model struct {
	scene    registry.Scene
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	input    core.InputFrame
	state    core.SceneState
	keys     KeyMap
	help     help.Model
	reloads  <-chan string
	logger   *log.Logger
	status   string
	embedded bool // running inside a session; back returns to its menu
	quitting bool
	back     bool
	saved    bool // whether the current run has been stored
}

// NewModel resets the scene for cfg and wraps it in a model.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := scene.Reset(cfg); err != nil {
		return Model{}, err
	}

	return Model{
		scene:  scene,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		config: cfg,
		input:  core.NewInputFrame(),
		state:  scene.State(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: log.New(os.Stderr),
	}, nil
}

// WithReloads makes the model reset its scene whenever a path arrives on ch.
func (m Model) WithReloads(ch <-chan string) Model {
	m.reloads = ch
	return m
}

// WithLogger sets the logger used for storage errors.
func (m Model) WithLogger(logger *log.Logger) Model {
	m.logger = logger
	return m
}

// Init starts the tick loop and the reload listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.reloads))
}

func waitForReload(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return LevelChangedMsg{Path: p}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case LevelChangedMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back) && (m.state.Over || m.state.Paused):
		m.saveRun()
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) {
		m.saveRun()
		m.saved = false
		m.status = ""
	}

	result := m.scene.Step(m.input)
	m.state = result.State

	if m.state.Over {
		m.saveRun()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleReload restarts the scene on the edited level file.
func (m Model) handleReload(msg LevelChangedMsg) (tea.Model, tea.Cmd) {
	m.saveRun()
	if err := m.scene.Reset(m.config); err != nil {
		m.status = fmt.Sprintf("reload %s: %v", filepath.Base(msg.Path), err)
	} else {
		m.status = fmt.Sprintf("reloaded %s", filepath.Base(msg.Path))
		m.state = m.scene.State()
		m.saved = false
	}
	return m, waitForReload(m.reloads)
}

// saveRun stores the current run once. Runs that never ticked are skipped.
func (m *Model) saveRun() {
	if m.saved || m.store == nil || m.state.Ticks == 0 {
		return
	}
	r, ok := m.scene.(recorder)
	if !ok {
		return
	}
	if _, err := m.store.SaveRun(r.Record()); err != nil {
		m.logger.Warn("could not save run", "scene", m.scene.ID(), "error", err)
		return
	}
	m.saved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scene.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tilenav", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = fmt.Sprintf("screenshot: %v", err)
		return
	}
	m.status = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scene.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for a scene. Changed level files arriving
// on reloads restart the scene.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, reloads <-chan string) error {
	model, err := NewModel(scene, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model.WithReloads(reloads),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
