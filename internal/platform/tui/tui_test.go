package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilenav/internal/core"
	"github.com/vovakirdan/tilenav/internal/storage"
)

type stubScene struct {
	ticks  int
	last   core.InputFrame
	resets int
}

func (s *stubScene) ID() string    { return "stub" }
func (s *stubScene) Title() string { return "Stub" }

func (s *stubScene) Reset(core.RuntimeConfig) error {
	s.resets++
	s.ticks = 0
	return nil
}

func (s *stubScene) Step(in core.InputFrame) core.StepResult {
	s.ticks++
	s.last = core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			s.last.Set(a)
		}
	}
	return core.StepResult{State: s.State()}
}

func (s *stubScene) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub scene")
}

func (s *stubScene) State() core.SceneState {
	return core.SceneState{Ticks: s.ticks, Score: s.ticks, Over: s.ticks >= 3}
}

func (s *stubScene) Record() storage.Run {
	return storage.Run{SceneID: "stub", LevelID: "lvl", Ticks: s.ticks, Score: s.ticks}
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapActions(t *testing.T) {
	k := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{keyRunes('w'), core.ActionUp},
		{keyRunes('j'), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{keyRunes('d'), core.ActionRight},
		{keyRunes('p'), core.ActionPause},
		{keyRunes('r'), core.ActionRestart},
		{keyRunes('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{keyRunes('z'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := k.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}

	frame := core.NewInputFrame()
	if k.MapKeyToFrame(keyRunes('s'), &frame) {
		t.Fatal("down reported quit")
	}
	if !frame.Has(core.ActionDown) {
		t.Error("down not recorded")
	}
	if !k.MapKeyToFrame(keyRunes('q'), &frame) {
		t.Error("q did not report quit")
	}
}

func TestModelStepsSceneWithInput(t *testing.T) {
	scene := &stubScene{}
	m, err := NewModel(scene, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if scene.resets != 1 {
		t.Fatalf("resets = %d, want 1", scene.resets)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	next, cmd := next.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if !scene.last.Has(core.ActionRight) {
		t.Error("scene did not see the right key")
	}

	next, _ = next.Update(TickMsg(time.Now()))
	if scene.last.Has(core.ActionRight) {
		t.Error("input frame not cleared after a tick")
	}

	view := next.View()
	if !strings.Contains(view, "stub scene") {
		t.Errorf("view missing scene output:\n%s", view)
	}

	next, cmd = next.Update(keyRunes('q'))
	if cmd == nil || !next.(Model).IsQuitting() {
		t.Error("q did not quit")
	}
}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	scene := &stubScene{}
	m, err := NewModel(scene, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	var next tea.Model = m
	for range 5 {
		next, _ = next.Update(TickMsg(time.Now()))
	}

	runs, err := store.RecentRuns("lvl", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 3 {
		t.Fatalf("runs = %+v, want one run with score 3", runs)
	}
}

func TestModelReloadResetsScene(t *testing.T) {
	scene := &stubScene{}
	m, err := NewModel(scene, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	next, _ := m.Update(TickMsg(time.Now()))
	next, _ = next.Update(LevelChangedMsg{Path: "/tmp/levels/maze.yaml"})

	if scene.resets != 2 || scene.ticks != 0 {
		t.Errorf("resets = %d ticks = %d, want 2 and 0", scene.resets, scene.ticks)
	}
	if got := next.(Model).status; got != "reloaded maze.yaml" {
		t.Errorf("status = %q", got)
	}
}

func TestLevelWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewLevelWatcher(dir)
	if err != nil {
		t.Fatalf("NewLevelWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	level := filepath.Join(dir, "maze.yaml")
	if err := os.WriteFile(level, []byte("id: maze\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != level {
			t.Errorf("event for %q, want %q", got, level)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for the level file")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for range w.Events {
	}
}
