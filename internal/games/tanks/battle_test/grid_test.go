package battle_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
)

func mustParse(t *testing.T, rows ...string) *battle.Grid {
	t.Helper()
	g, err := battle.ParseGrid(rows)
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}
	return g
}

func TestParseGrid(t *testing.T) {
	g := mustParse(t,
		"....",
		".#..",
		"..#.",
		"....",
	)

	if g.Size() != 4 {
		t.Fatalf("Size() = %d, expected 4", g.Size())
	}
	if g.ObstacleCount() != 2 {
		t.Errorf("ObstacleCount() = %d, expected 2", g.ObstacleCount())
	}

	testCases := []struct {
		cell    battle.Cell
		blocked bool
		free    bool
	}{
		{battle.C(1, 1), true, false},
		{battle.C(2, 2), true, false},
		{battle.C(0, 0), false, true},
		{battle.C(3, 3), false, true},
		{battle.C(-1, 0), false, false}, // out of bounds is never an obstacle
		{battle.C(4, 2), false, false},
	}

	for _, tc := range testCases {
		if got := g.IsBlocked(tc.cell); got != tc.blocked {
			t.Errorf("IsBlocked(%v) = %v, expected %v", tc.cell, got, tc.blocked)
		}
		if got := g.IsFree(tc.cell); got != tc.free {
			t.Errorf("IsFree(%v) = %v, expected %v", tc.cell, got, tc.free)
		}
	}
}

func TestParseGridErrors(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"not square", []string{"...", "..."}},
		{"bad rune", []string{"..", ".x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := battle.ParseGrid(tc.rows); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGridLinesMatchesInput(t *testing.T) {
	rows := []string{"#..", ".#.", "..#"}
	g := mustParse(t, rows...)
	for i, line := range g.Lines() {
		if line != rows[i] {
			t.Errorf("Lines()[%d] = %q, expected %q", i, line, rows[i])
		}
	}
}

func TestNewGridRejectsBadSize(t *testing.T) {
	if _, err := battle.NewGrid(0, nil); !errors.Is(err, battle.ErrInvalidSize) {
		t.Errorf("NewGrid(0) error = %v, expected ErrInvalidSize", err)
	}
	g, err := battle.NewGrid(3, []battle.Cell{battle.C(1, 1), battle.C(7, 7)})
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	if g.ObstacleCount() != 1 {
		t.Errorf("out-of-bounds obstacles should be ignored, got %d obstacles", g.ObstacleCount())
	}
}

func TestAdjacent(t *testing.T) {
	g := mustParse(t,
		"...",
		".#.",
		"...",
	)

	testCases := []struct {
		a, b     battle.Cell
		expected bool
	}{
		{battle.C(0, 0), battle.C(1, 0), true},
		{battle.C(0, 0), battle.C(0, 1), true},
		{battle.C(0, 0), battle.C(1, 1), false}, // diagonal, and blocked
		{battle.C(1, 0), battle.C(1, 1), false}, // into obstacle
		{battle.C(1, 1), battle.C(1, 0), false}, // out of obstacle
		{battle.C(0, 0), battle.C(-1, 0), false},
		{battle.C(0, 0), battle.C(2, 0), false}, // not a neighbor
		{battle.C(0, 0), battle.C(0, 0), false},
	}

	for _, tc := range testCases {
		if got := g.Adjacent(tc.a, tc.b); got != tc.expected {
			t.Errorf("Adjacent(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestNeighborsOrder(t *testing.T) {
	g := mustParse(t,
		"...",
		"...",
		"...",
	)
	got := g.Neighbors(battle.C(1, 1))
	expected := []battle.Cell{battle.C(1, 2), battle.C(2, 1), battle.C(1, 0), battle.C(0, 1)}
	if len(got) != len(expected) {
		t.Fatalf("Neighbors() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Neighbors()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 12).Draw(t, "size")
		percent := rapid.IntRange(0, 70).Draw(t, "percent")
		seed := rapid.Int64().Draw(t, "seed")

		g, err := battle.GenerateGrid(size, percent, battle.NewRNG(seed))
		if err != nil {
			t.Fatalf("GenerateGrid() failed: %v", err)
		}

		for y := -1; y <= size; y++ {
			for x := -1; x <= size; x++ {
				a := battle.C(x, y)
				for _, d := range battle.Directions {
					b := a.Step(d)
					ab, ba := g.Adjacent(a, b), g.Adjacent(b, a)
					if ab != ba {
						t.Fatalf("Adjacent(%v, %v) = %v but Adjacent(%v, %v) = %v", a, b, ab, b, a, ba)
					}
					if ab && (!g.IsFree(a) || !g.IsFree(b)) {
						t.Fatalf("Adjacent(%v, %v) with a blocked or out-of-bounds endpoint", a, b)
					}
					if !ab && g.IsFree(a) && g.IsFree(b) {
						t.Fatalf("free neighbors %v and %v are not adjacent", a, b)
					}
				}
			}
		}
	})
}

func TestGenerateGridDensity(t *testing.T) {
	empty, err := battle.GenerateGrid(20, 0, battle.NewRNG(1))
	if err != nil {
		t.Fatalf("GenerateGrid() failed: %v", err)
	}
	if empty.ObstacleCount() != 0 {
		t.Errorf("0%% grid has %d obstacles", empty.ObstacleCount())
	}

	full, err := battle.GenerateGrid(20, 100, battle.NewRNG(1))
	if err != nil {
		t.Fatalf("GenerateGrid() failed: %v", err)
	}
	if full.ObstacleCount() != 400 {
		t.Errorf("100%% grid has %d obstacles, expected 400", full.ObstacleCount())
	}

	// Same seed, same layout
	a, _ := battle.GenerateGrid(20, 10, battle.NewRNG(99))
	b, _ := battle.GenerateGrid(20, 10, battle.NewRNG(99))
	for i, line := range a.Lines() {
		if line != b.Lines()[i] {
			t.Fatalf("row %d differs between identical seeds", i)
		}
	}
}

func TestFreeCells(t *testing.T) {
	g := mustParse(t,
		"#...",
		"....",
		"..#.",
		"....",
	)
	units := []battle.Unit{battle.NewUnit(0, battle.C(1, 0), battle.CategoryBlue)}

	left := g.FreeCells(core.NewRect(0, 0, 2, 4), units)
	// 8 cells in the left half, minus one obstacle and one unit
	if len(left) != 6 {
		t.Fatalf("FreeCells(left) = %v, expected 6 cells", left)
	}
	for _, c := range left {
		if c.X >= 2 {
			t.Errorf("FreeCells returned %v outside the region", c)
		}
		if !g.IsFreeOf(c, units) {
			t.Errorf("FreeCells returned occupied or blocked %v", c)
		}
	}

	// Regions are clipped to the grid
	if all := g.FreeCells(core.NewRect(-5, -5, 50, 50), nil); len(all) != 14 {
		t.Errorf("FreeCells(oversized) = %d cells, expected 14", len(all))
	}
}
