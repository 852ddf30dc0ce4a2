// Package battle is the headless simulation of a turn-based tank match:
// the obstacle grid, the units, pathfinding, projectiles and the match
// controller that ties them together. It has no terminal or input-device
// dependencies and is advanced only through method calls and Tick.
package battle

import "fmt"

// Cell is an integer grid coordinate.
// X increases to the right, Y increases downward (screen coordinates).
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighboring cell in direction d.
func (c Cell) Step(d Dir) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Dir is one of the four cardinal directions.
type Dir uint8

// The declaration order is the neighbor expansion order used by pathfinding.
const (
	DirDown Dir = iota
	DirRight
	DirUp
	DirLeft
)

// Directions lists every direction in expansion order.
var Directions = [4]Dir{DirDown, DirRight, DirUp, DirLeft}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset of one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirDown:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// dirBetween returns the direction leading from a to b if they are
// orthogonal neighbors.
func dirBetween(a, b Cell) (Dir, bool) {
	for _, d := range Directions {
		if a.Step(d) == b {
			return d, true
		}
	}
	return 0, false
}
