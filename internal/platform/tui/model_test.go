package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// scriptedGame records its input and ends when told to.
type scriptedGame struct {
	resets  int
	resized bool
	inputs  []core.InputFrame
	over    bool
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.over = false
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	if in.Click != nil {
		frame.SetClick(in.Click.X, in.Click.Y)
	}
	g.inputs = append(g.inputs, frame)
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{GameOver: g.over}
}

func (g *scriptedGame) Resize(int, int) { g.resized = true }

func (g *scriptedGame) Report() (core.MatchReport, bool) {
	if !g.over {
		return core.MatchReport{}, false
	}
	return core.MatchReport{Scenario: "scripted", Winner: core.WinnerPlayer2, EndReason: "eliminated", Turns: 4}, true
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg(time.Now()))
}

func TestModelForwardsKeysAndClicks(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, runeKey("f"))
	m = update(t, m, tea.MouseMsg{X: 7, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m)
	m = tick(t, m)

	if len(g.inputs) != 2 {
		t.Fatalf("game stepped %d times, expected 2", len(g.inputs))
	}
	first := g.inputs[0]
	if !first.Has(core.ActionShoot) || first.Click == nil || *first.Click != (core.Point{X: 7, Y: 2}) {
		t.Errorf("first frame = %+v, expected fire and a click at (7,2)", first)
	}
	if !g.inputs[1].Empty() {
		t.Errorf("input should be cleared between ticks, got %+v", g.inputs[1])
	}
}

func TestModelQuit(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !g.resized || g.resets != 1 {
		t.Errorf("resized = %v, resets = %d: resize should not restart", g.resized, g.resets)
	}
	if !strings.Contains(m.View(), "scripted") {
		t.Error("view should show the game")
	}
}

func TestModelSavesReportOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{}
	m := NewModel(g, store, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()

	m = tick(t, m)
	g.over = true
	m = tick(t, m)
	m = tick(t, m)

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, expected 1", len(matches))
	}
	if matches[0].Winner != core.WinnerPlayer2 || matches[0].Turns != 4 {
		t.Errorf("saved = %+v", matches[0].MatchReport)
	}

	// Restart resets the game and allows the next result to be saved
	m = update(t, m, runeKey("r"))
	m = tick(t, m)
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2", g.resets)
	}
	g.over = true
	tick(t, m)

	matches, _ = store.RecentMatches(10)
	if len(matches) != 2 {
		t.Errorf("saved %d matches after restart, expected 2", len(matches))
	}
}
