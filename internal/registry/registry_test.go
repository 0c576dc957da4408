package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string    { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub-b", func() Game { return &stubGame{id: "zz-stub-b"} })
	Register("zz-stub-a", func() Game { return &stubGame{id: "zz-stub-a"} })

	if !Exists("zz-stub-a") || Exists("zz-missing") {
		t.Error("Exists reports wrong registrations")
	}

	list := List()
	var ids []string
	for _, info := range list {
		if info.ID == "zz-stub-a" && info.Title != "Stub zz-stub-a" {
			t.Errorf("title = %q", info.Title)
		}
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}

	g, err := Create("zz-stub-b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "zz-stub-b" {
		t.Errorf("created %q", g.ID())
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("zz-missing")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}
