package registry

import (
	"testing"

	"github.com/vovakirdan/tilenav/internal/core"
)

type stubScene struct {
	id    string
	state core.SceneState
}

func (s *stubScene) ID() string    { return s.id }
func (s *stubScene) Title() string { return "Stub " + s.id }

func (s *stubScene) Reset(core.RuntimeConfig) error {
	s.state = core.SceneState{}
	return nil
}

func (s *stubScene) Step(core.InputFrame) core.StepResult {
	s.state.Ticks++
	return core.StepResult{State: s.state}
}

func (s *stubScene) Render(*core.Screen)    {}
func (s *stubScene) State() core.SceneState { return s.state }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Scene { return &stubScene{id: "zz-stub"} })
	Register("aa-stub", func() Scene { return &stubScene{id: "aa-stub"} })

	if !Exists("zz-stub") || Exists("missing") {
		t.Error("Exists() returned wrong result")
	}

	sc, err := Create("aa-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if sc.ID() != "aa-stub" {
		t.Errorf("Create() gave scene %q", sc.ID())
	}
	if res := sc.Step(core.NewInputFrame()); res.State.Ticks != 1 {
		t.Errorf("Step() ticks = %d, want 1", res.State.Ticks)
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown scene should fail")
	}

	list := List()
	var prev string
	titles := map[string]string{}
	for _, info := range list {
		if info.ID < prev {
			t.Errorf("List() not sorted: %q after %q", info.ID, prev)
		}
		prev = info.ID
		titles[info.ID] = info.Title
	}
	if titles["zz-stub"] != "Stub zz-stub" {
		t.Errorf("title = %q", titles["zz-stub"])
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Scene { return &stubScene{id: "dup-stub"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("dup-stub", func() Scene { return &stubScene{id: "dup-stub"} })
}
