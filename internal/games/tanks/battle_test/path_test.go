package battle_test

import (
	"testing"

	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle/mocks"
)

// fataler is the subset of *testing.T and *rapid.T used by helpers.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// checkRoute verifies a route is a connected walk from start to end that
// never enters an occupied cell.
func checkRoute(t fataler, g *battle.Grid, r battle.Route, start, end battle.Cell, units []battle.Unit) {
	t.Helper()
	if r[0] != start || r[len(r)-1] != end {
		t.Fatalf("route %v does not run from %v to %v", r, start, end)
	}
	for i := 1; i < len(r); i++ {
		if !g.Adjacent(r[i-1], r[i]) {
			t.Fatalf("route step %v -> %v is not adjacent", r[i-1], r[i])
		}
		for _, u := range units {
			if u.Pos == r[i] {
				t.Fatalf("route enters occupied cell %v", r[i])
			}
		}
	}
}

func TestShortestPathOpenGrid(t *testing.T) {
	g, err := battle.NewGrid(20, nil)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	start, end := battle.C(0, 0), battle.C(5, 5)
	for name, find := range map[string]func(*battle.Grid, battle.Cell, battle.Cell, []battle.Unit) battle.Route{
		"bfs":      battle.ShortestPath,
		"weighted": battle.WeightedPath,
	} {
		t.Run(name, func(t *testing.T) {
			r := find(g, start, end, nil)
			if len(r) != 11 {
				t.Fatalf("route length = %d, expected 11 cells", len(r))
			}
			if r.Steps() != 10 {
				t.Errorf("Steps() = %d, expected 10", r.Steps())
			}
			checkRoute(t, g, r, start, end, nil)
		})
	}
}

func TestShortestPathSameCell(t *testing.T) {
	g := mustParse(t, "...", "...", "...")
	r := battle.ShortestPath(g, battle.C(1, 1), battle.C(1, 1), nil)
	if len(r) != 1 || r[0] != battle.C(1, 1) {
		t.Errorf("ShortestPath(start == end) = %v, expected [start]", r)
	}
	r = battle.WeightedPath(g, battle.C(1, 1), battle.C(1, 1), nil)
	if len(r) != 1 || r[0] != battle.C(1, 1) {
		t.Errorf("WeightedPath(start == end) = %v, expected [start]", r)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := mustParse(t,
		".....",
		"...#.",
		"..#.#",
		"...#.",
		".....",
	)

	// (3,2) is walled in on all four sides
	if r := battle.ShortestPath(g, battle.C(0, 0), battle.C(3, 2), nil); !r.Empty() {
		t.Errorf("expected no route into an enclosed cell, got %v", r)
	}
	if r := battle.WeightedPath(g, battle.C(0, 0), battle.C(3, 2), nil); !r.Empty() {
		t.Errorf("expected no weighted route into an enclosed cell, got %v", r)
	}
	if r := battle.ShortestPath(g, battle.C(0, 0), battle.C(9, 9), nil); !r.Empty() {
		t.Errorf("expected no route to an out-of-bounds cell, got %v", r)
	}
}

func TestPathAvoidsUnits(t *testing.T) {
	g := mustParse(t,
		"#####",
		"#...#",
		"#.#.#",
		"#...#",
		"#####",
	)
	start, end := battle.C(1, 1), battle.C(3, 1)

	direct := battle.ShortestPath(g, start, end, nil)
	if direct.Steps() != 2 {
		t.Fatalf("direct route = %v, expected 2 steps", direct)
	}

	blocker := []battle.Unit{battle.NewUnit(7, battle.C(2, 1), battle.CategoryCyan)}
	detour := battle.ShortestPath(g, start, end, blocker)
	if detour.Steps() != 6 {
		t.Fatalf("detour = %v, expected 6 steps around the blocker", detour)
	}
	checkRoute(t, g, detour, start, end, blocker)

	// Sealing the second corridor leaves no route
	blockers := append(blocker, battle.NewUnit(8, battle.C(2, 3), battle.CategoryYellow))
	if r := battle.WeightedPath(g, start, end, blockers); !r.Empty() {
		t.Errorf("expected no route when both corridors are occupied, got %v", r)
	}
}

func TestWeightedMatchesShortest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(2, 14).Draw(t, "size")
		percent := rapid.IntRange(0, 40).Draw(t, "percent")
		seed := rapid.Int64().Draw(t, "seed")
		g, _ := battle.GenerateGrid(size, percent, battle.NewRNG(seed))

		start := battle.C(rapid.IntRange(0, size-1).Draw(t, "sx"), rapid.IntRange(0, size-1).Draw(t, "sy"))
		end := battle.C(rapid.IntRange(0, size-1).Draw(t, "ex"), rapid.IntRange(0, size-1).Draw(t, "ey"))
		if !g.IsFree(start) || !g.IsFree(end) {
			t.Skip("endpoint on an obstacle")
		}

		bfs := battle.ShortestPath(g, start, end, nil)
		weighted := battle.WeightedPath(g, start, end, nil)
		if len(bfs) != len(weighted) {
			t.Fatalf("ShortestPath = %v, WeightedPath = %v", bfs, weighted)
		}
		for i := range bfs {
			if bfs[i] != weighted[i] {
				t.Fatalf("routes diverge at %d: %v vs %v", i, bfs, weighted)
			}
		}
		if !bfs.Empty() {
			checkRoute(t, g, bfs, start, end, nil)
		}
	})
}

func TestRandomStepFollowsPermutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRNG(ctrl)

	g := mustParse(t,
		"...",
		"...",
		"...",
	)
	start := battle.C(1, 1)

	// Up is tried first
	rng.EXPECT().Perm(4).Return([]int{2, 0, 1, 3})
	r := battle.RandomStep(g, start, nil, rng)
	if len(r) != 2 || r[0] != start || r[1] != battle.C(1, 0) {
		t.Errorf("RandomStep() = %v, expected [(1,1) (1,0)]", r)
	}

	// Up occupied, falls through to down
	rng.EXPECT().Perm(4).Return([]int{2, 0, 1, 3})
	units := []battle.Unit{battle.NewUnit(1, battle.C(1, 0), battle.CategoryRed)}
	r = battle.RandomStep(g, start, units, rng)
	if len(r) != 2 || r[1] != battle.C(1, 2) {
		t.Errorf("RandomStep() = %v, expected a step down to (1,2)", r)
	}
}

func TestRandomStepBoxedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRNG(ctrl)
	rng.EXPECT().Perm(4).Return([]int{0, 1, 2, 3})

	g := mustParse(t,
		".#.",
		"#.#",
		".#.",
	)
	if r := battle.RandomStep(g, battle.C(1, 1), nil, rng); !r.Empty() {
		t.Errorf("RandomStep() = %v, expected no step", r)
	}
}

func TestRandomStepValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 10).Draw(t, "size")
		seed := rapid.Int64().Draw(t, "seed")
		rng := battle.NewRNG(seed)
		g, _ := battle.GenerateGrid(size, 30, rng)

		start := battle.C(rapid.IntRange(0, size-1).Draw(t, "x"), rapid.IntRange(0, size-1).Draw(t, "y"))
		if !g.IsFree(start) {
			t.Skip("start on an obstacle")
		}
		var units []battle.Unit
		for _, d := range battle.Directions {
			if n := start.Step(d); g.IsFree(n) && rapid.Bool().Draw(t, "occupy "+d.String()) {
				units = append(units, battle.NewUnit(len(units), n, battle.CategoryCyan))
			}
		}

		r := battle.RandomStep(g, start, units, rng)
		if r.Empty() {
			for _, d := range battle.Directions {
				if g.IsFreeOf(start.Step(d), units) {
					t.Fatalf("RandomStep gave up although %v is free", start.Step(d))
				}
			}
			return
		}
		if len(r) != 2 || r[0] != start || !g.Adjacent(start, r[1]) {
			t.Fatalf("RandomStep() = %v is not a single cardinal step from %v", r, start)
		}
	})
}
