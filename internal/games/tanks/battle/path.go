package battle

import "container/heap"

// Route is an ordered list of cells from start to end, both inclusive.
// An empty route means no route exists or no move happens.
type Route []Cell

// Empty reports whether the route holds no cells.
func (r Route) Empty() bool {
	return len(r) == 0
}

// Steps returns the number of moves along the route.
func (r Route) Steps() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Strategy names a way of moving a unit.
type Strategy uint8

const (
	StrategyShortest Strategy = iota // BFS to a clicked target
	StrategyWeighted                 // cost-ordered search to a clicked target
	StrategyRandom                   // one immediate random step
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyShortest:
		return "shortest"
	case StrategyWeighted:
		return "weighted"
	case StrategyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// NeedsTarget reports whether the strategy waits for a destination click.
func (s Strategy) NeedsTarget() bool {
	return s != StrategyRandom
}

func occupancy(units []Unit) map[Cell]bool {
	occ := make(map[Cell]bool, len(units))
	for i := range units {
		occ[units[i].Pos] = true
	}
	return occ
}

func buildRoute(parent map[Cell]Cell, start, end Cell) Route {
	var route Route
	for c := end; c != start; c = parent[c] {
		route = append(route, c)
	}
	route = append(route, start)
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// ShortestPath returns a minimum hop-count route from start to end,
// walking only adjacent, unoccupied cells. Neighbors are expanded in
// Directions order. Returns an empty route if end is unreachable.
func ShortestPath(g *Grid, start, end Cell, units []Unit) Route {
	if !g.InBounds(start) || !g.InBounds(end) {
		return nil
	}
	if start == end {
		return Route{start}
	}

	occ := occupancy(units)
	visited := map[Cell]bool{start: true}
	parent := make(map[Cell]Cell)
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range g.Neighbors(cur) {
			if visited[next] || occ[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			if next == end {
				return buildRoute(parent, start, end)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

type searchNode struct {
	cell  Cell
	cost  int
	seq   int // discovery order, breaks cost ties
	index int // heap index
}

type openSet []*searchNode

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].cost != o[j].cost {
		return o[i].cost < o[j].cost
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	return n
}

// WeightedPath returns a minimum-cost route from start to end, using
// Grid.StepCost for each entered cell. Ties are expanded in discovery
// order, so under uniform cost it returns the same route as ShortestPath.
func WeightedPath(g *Grid, start, end Cell, units []Unit) Route {
	if !g.InBounds(start) || !g.InBounds(end) {
		return nil
	}
	if start == end {
		return Route{start}
	}

	occ := occupancy(units)
	best := map[Cell]int{start: 0}
	parent := make(map[Cell]Cell)
	closed := make(map[Cell]bool)
	seq := 0

	open := &openSet{{cell: start}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true
		if cur.cell == end {
			return buildRoute(parent, start, end)
		}

		for _, next := range g.Neighbors(cur.cell) {
			if closed[next] || occ[next] {
				continue
			}
			cost := cur.cost + g.StepCost(next)
			if prev, ok := best[next]; ok && cost >= prev {
				continue
			}
			best[next] = cost
			parent[next] = cur.cell
			seq++
			heap.Push(open, &searchNode{cell: next, cost: cost, seq: seq})
		}
	}
	return nil
}

// RandomStep tries the four directions in a random order and returns
// [start, first free unoccupied neighbor], or an empty route when the
// unit is boxed in.
func RandomStep(g *Grid, start Cell, units []Unit, rng RNG) Route {
	for _, i := range rng.Perm(len(Directions)) {
		next := start.Step(Directions[i])
		if g.IsFreeOf(next, units) {
			return Route{start, next}
		}
	}
	return nil
}

// FindRoute dispatches to the pathfinder for a target-based strategy.
func FindRoute(s Strategy, g *Grid, start, end Cell, units []Unit) Route {
	if s == StrategyWeighted {
		return WeightedPath(g, start, end, units)
	}
	return ShortestPath(g, start, end, units)
}
