package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func init() {
	registry.Register("tui_test_a", func() registry.Game { return &scriptedGame{} })
	registry.Register("tui_test_b", func() registry.Game { return &scriptedGame{} })
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	r := m.Result()
	if r.Quit || r.WantsHistory {
		t.Fatalf("Result() = %+v", r)
	}
	if r.GameID != registry.List()[1].ID {
		t.Errorf("GameID = %q, expected the second scenario", r.GameID)
	}
	if r.Difficulty != config.DifficultyHard {
		t.Errorf("Difficulty = %q, expected hard", r.Difficulty)
	}
}

func TestMenuDifficultyWraps(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Difficulty() != config.DifficultyFixed {
		t.Errorf("Difficulty() = %q, expected fixed", m.Difficulty())
	}
	if !strings.Contains(m.View(), "Difficulty: < fixed >") {
		t.Error("view should show the difficulty")
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if r := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab}).Result(); !r.WantsHistory {
		t.Errorf("tab should open the history, got %+v", r)
	}
	if r := menuUpdate(t, m, runeKey("q")).Result(); !r.Quit {
		t.Errorf("q should quit, got %+v", r)
	}
}

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveMatch(core.MatchReport{Scenario: "tui_test_b", Winner: core.WinnerPlayer1, Survivors1: 2, EndReason: "eliminated", DurationSecs: 95, Turns: 7})

	m := NewHistoryModel(store, "tui_test_b", 100, 30)
	if len(m.matches) != 1 {
		t.Fatalf("loaded %d matches, expected 1", len(m.matches))
	}
	if m.stats == nil || m.stats.Player1Wins != 1 {
		t.Errorf("stats = %+v", m.stats)
	}
	view := m.View()
	if !strings.Contains(view, "MATCH HISTORY") || !strings.Contains(view, "1 matches") {
		t.Errorf("view missing title or stats:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestHistoryRows(t *testing.T) {
	rows := HistoryRows([]storage.MatchEntry{{
		ID: 7,
		MatchReport: core.MatchReport{
			Winner: core.WinnerDraw, EndReason: "clock", Survivors1: 3, Survivors2: 3, Turns: 20, DurationSecs: 300,
		},
	}})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	expected := []string{"7", "Draw", "clock", "3-3", "20", "300s"}
	for i, want := range expected {
		if rows[0][i] != want {
			t.Errorf("column %d = %q, expected %q", i, rows[0][i], want)
		}
	}
}
