package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

type stubGame struct {
	id string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Description() string                  { return "a stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Error("Exists() = false, expected true")
	}
	if Exists("zz_missing") {
		t.Error("Exists() = true for an unknown id")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("ID() = %q, expected zz_stub_b", g.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() should fail for an unknown id")
	}

	var got []GameInfo
	for _, info := range List() {
		if info.ID == "zz_stub_a" || info.ID == "zz_stub_b" {
			got = append(got, info)
		}
	}
	if len(got) != 2 || got[0].ID != "zz_stub_a" {
		t.Fatalf("List() = %+v, expected sorted stubs", got)
	}
	if got[0].Title != "Stub zz_stub_a" || got[0].Description != "a stub" {
		t.Errorf("info = %+v", got[0])
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
