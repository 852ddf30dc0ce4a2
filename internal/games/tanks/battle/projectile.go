package battle

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// ErrDegenerateAim is returned when a shot targets the shooter's own cell.
var ErrDegenerateAim = errors.New("battle: target equals source")

// Damage is the amount a hit removes from a unit, by durability class.
type Damage struct {
	Heavy int // taken by blue and cyan units
	Light int // taken by red and yellow units
}

// For returns the damage a unit of category c takes from one hit.
func (d Damage) For(c Category) int {
	if c.Heavy() {
		return d.Heavy
	}
	return d.Light
}

// Ballistics holds the tunable projectile parameters.
type Ballistics struct {
	Speed          float64 // cells per tick
	DeflectDegrees float64 // maximum diffuse bounce angle, either side
	Damage         Damage
}

// Projectile is a shot moving through continuous grid space.
type Projectile struct {
	Pos       core.Vec2
	Dir       core.Vec2 // unit length
	Owner     int       // shooter's unit ID, immune to this projectile
	Destroyed bool

	speed      float64
	deflect    float64 // radians
	damage     Damage
	mirror     bool // reflect off obstacles instead of scattering
	multiplier int
}

// Hit describes a projectile striking a unit.
type Hit struct {
	UnitID    int
	Category  Category
	Damage    int
	Destroyed bool
	At        Cell
}

func cellCenter(c Cell) core.Vec2 {
	return core.V(float64(c.X)+0.5, float64(c.Y)+0.5)
}

// NewProjectile fires a projectile from the center of from toward the
// center of to.
func NewProjectile(from, to Cell, owner int, b Ballistics) (*Projectile, error) {
	if from == to {
		return nil, ErrDegenerateAim
	}
	origin := cellCenter(from)
	dir, ok := cellCenter(to).Sub(origin).Normalize()
	if !ok {
		return nil, ErrDegenerateAim
	}
	return &Projectile{
		Pos:        origin,
		Dir:        dir,
		Owner:      owner,
		speed:      b.Speed,
		deflect:    b.DeflectDegrees * math.Pi / 180,
		damage:     b.Damage,
		multiplier: 1,
	}, nil
}

// EnableMirror makes obstacle bounces mirror reflections on the blocked
// axis instead of a random deflection.
func (p *Projectile) EnableMirror() {
	p.mirror = true
}

// Amplify multiplies the damage of the eventual hit.
func (p *Projectile) Amplify(factor int) {
	p.multiplier *= factor
}

// Cell returns the grid cell containing the projectile.
func (p *Projectile) Cell() Cell {
	x, y := p.Pos.Floor()
	return C(x, y)
}

// Update advances the projectile by one tick: obstacle bounce, movement,
// unit collision, then boundary reflection. Damage is applied to the hit
// unit in place. At most one unit is hit per tick, and a hit destroys
// the projectile.
func (p *Projectile) Update(g *Grid, units []Unit, rng RNG) (Hit, bool) {
	if p.Destroyed {
		return Hit{}, false
	}

	if p.lineBlocked(g) {
		p.bounce(g, rng)
	}

	p.Pos = p.Pos.Add(p.Dir.Scale(p.speed))

	cell := p.Cell()
	for i := range units {
		u := &units[i]
		if u.ID == p.Owner || u.Pos != cell || u.Destroyed() {
			continue
		}
		dmg := p.damage.For(u.Category) * p.multiplier
		u.TakeDamage(dmg)
		p.Destroyed = true
		return Hit{
			UnitID:    u.ID,
			Category:  u.Category,
			Damage:    dmg,
			Destroyed: u.Destroyed(),
			At:        cell,
		}, true
	}

	p.reflectAtBoundary(g.Size())
	return Hit{}, false
}

// lineBlocked samples the cells from the current position to one unit
// step ahead, endpoints included.
func (p *Projectile) lineBlocked(g *Grid) bool {
	steps := int(math.Ceil(p.Dir.Len()))
	for i := 0; i <= steps; i++ {
		x, y := p.Pos.Add(p.Dir.Scale(float64(i) / float64(steps))).Floor()
		if g.IsBlocked(C(x, y)) {
			return true
		}
	}
	return false
}

func (p *Projectile) bounce(g *Grid, rng RNG) {
	if p.mirror {
		p.reflectOffObstacle(g)
		return
	}
	angle := (rng.Float64()*2 - 1) * p.deflect
	if dir, ok := p.Dir.Rotate(angle).Normalize(); ok {
		p.Dir = dir
	}
}

// reflectOffObstacle mirrors the direction on each axis whose one-step
// probe runs into an obstacle. A pure corner hit reverses both axes.
func (p *Projectile) reflectOffObstacle(g *Grid) {
	cx, cy := p.Pos.Floor()
	ax, ay := p.Pos.Add(p.Dir).Floor()

	flipX := ax != cx && g.IsBlocked(C(ax, cy))
	flipY := ay != cy && g.IsBlocked(C(cx, ay))
	if !flipX && !flipY {
		flipX, flipY = true, true
	}
	if flipX {
		p.Dir.X = -p.Dir.X
	}
	if flipY {
		p.Dir.Y = -p.Dir.Y
	}
}

// reflectAtBoundary points each out-of-range axis back into the grid.
func (p *Projectile) reflectAtBoundary(size int) {
	limit := float64(size)
	switch {
	case p.Pos.X < 0:
		p.Dir.X = math.Abs(p.Dir.X)
	case p.Pos.X >= limit:
		p.Dir.X = -math.Abs(p.Dir.X)
	}
	switch {
	case p.Pos.Y < 0:
		p.Dir.Y = math.Abs(p.Dir.Y)
	case p.Pos.Y >= limit:
		p.Dir.Y = -math.Abs(p.Dir.Y)
	}
}
