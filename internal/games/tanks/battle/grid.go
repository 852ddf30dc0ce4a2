package battle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// ErrInvalidSize is returned when a grid is built with a non-positive size.
var ErrInvalidSize = errors.New("battle: grid size must be positive")

// Grid is a fixed-size square battlefield of free and blocked cells.
// A Grid never changes after construction, so the adjacency cache built
// in newGrid stays valid for its whole lifetime.
type Grid struct {
	size    int
	blocked []bool  // row-major, index = y*size + x
	adj     []uint8 // bit d set when the neighbor in Dir d is reachable
}

func newGrid(size int, blocked []bool) *Grid {
	g := &Grid{
		size:    size,
		blocked: blocked,
		adj:     make([]uint8, size*size),
	}
	g.buildAdjacency()
	return g
}

// NewGrid creates a grid of the given size with the listed cells blocked.
// Out-of-bounds cells in the list are ignored.
func NewGrid(size int, obstacles []Cell) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	blocked := make([]bool, size*size)
	for _, c := range obstacles {
		if c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size {
			blocked[c.Y*size+c.X] = true
		}
	}
	return newGrid(size, blocked), nil
}

// GenerateGrid creates a grid where each cell is independently blocked
// with probability percent/100. Connectivity is not guaranteed.
func GenerateGrid(size, percent int, rng RNG) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	blocked := make([]bool, size*size)
	if percent > 0 {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				blocked[y*size+x] = rng.Intn(100) < percent
			}
		}
	}
	return newGrid(size, blocked), nil
}

// ParseGrid builds a grid from square text rows where '#' marks an
// obstacle and '.' a free cell.
func ParseGrid(rows []string) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, ErrInvalidSize
	}
	blocked := make([]bool, size*size)
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("battle: row %d has %d cells, expected %d", y, len(row), size)
		}
		for x, ch := range row {
			switch ch {
			case '#':
				blocked[y*size+x] = true
			case '.':
			default:
				return nil, fmt.Errorf("battle: unexpected %q at %s", ch, C(x, y))
			}
		}
	}
	return newGrid(size, blocked), nil
}

func (g *Grid) buildAdjacency() {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			c := C(x, y)
			if g.IsBlocked(c) {
				continue
			}
			var mask uint8
			for _, d := range Directions {
				if g.IsFree(c.Step(d)) {
					mask |= 1 << d
				}
			}
			g.adj[g.index(c)] = mask
		}
	}
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.size + c.X
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// InBounds returns true if the cell is within the grid boundaries.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// IsBlocked reports whether c holds an obstacle.
// Out-of-bounds cells are not obstacles.
func (g *Grid) IsBlocked(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.blocked[g.index(c)]
}

// IsFree reports whether c is in bounds and not blocked.
func (g *Grid) IsFree(c Cell) bool {
	return g.InBounds(c) && !g.blocked[g.index(c)]
}

// IsFreeOf reports whether c is free and no unit stands on it.
func (g *Grid) IsFreeOf(c Cell, units []Unit) bool {
	if !g.IsFree(c) {
		return false
	}
	for i := range units {
		if units[i].Pos == c {
			return false
		}
	}
	return true
}

// Adjacent reports whether a unit can step directly between a and b.
// The relation is symmetric.
func (g *Grid) Adjacent(a, b Cell) bool {
	if !g.InBounds(a) {
		return false
	}
	d, ok := dirBetween(a, b)
	if !ok {
		return false
	}
	return g.adj[g.index(a)]&(1<<d) != 0
}

// Neighbors returns the cells adjacent to c in expansion order.
func (g *Grid) Neighbors(c Cell) []Cell {
	if !g.InBounds(c) {
		return nil
	}
	mask := g.adj[g.index(c)]
	out := make([]Cell, 0, 4)
	for _, d := range Directions {
		if mask&(1<<d) != 0 {
			out = append(out, c.Step(d))
		}
	}
	return out
}

// StepCost is the cost of entering c. Every cell currently costs 1.
func (g *Grid) StepCost(Cell) int {
	return 1
}

// ObstacleCount returns the number of blocked cells.
func (g *Grid) ObstacleCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// FreeCells returns the free cells inside region that no unit occupies,
// in row-major order.
func (g *Grid) FreeCells(region core.Rect, units []Unit) []Cell {
	var out []Cell
	for y := max(region.Y, 0); y < min(region.Bottom(), g.size); y++ {
		for x := max(region.X, 0); x < min(region.Right(), g.size); x++ {
			if c := C(x, y); g.IsFreeOf(c, units) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Lines renders the grid as '#'/'.' rows, the inverse of ParseGrid.
func (g *Grid) Lines() []string {
	lines := make([]string, g.size)
	var sb strings.Builder
	for y := 0; y < g.size; y++ {
		sb.Reset()
		for x := 0; x < g.size; x++ {
			if g.blocked[y*g.size+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
