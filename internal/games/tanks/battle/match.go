package battle

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// ErrNoRoom is returned when a faction's half of the grid cannot hold its
// roster.
var ErrNoRoom = errors.New("battle: not enough free cells to deploy units")

// Mode is the pending action of the active player.
type Mode uint8

const (
	ModeIdle         Mode = iota
	ModeAwaitingMove      // a targeted strategy waits for a destination click
	ModeShooting          // waiting for an aim click
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAwaitingMove:
		return "awaiting move target"
	case ModeShooting:
		return "aiming"
	default:
		return "idle"
	}
}

const noSelection = -1

// playerState holds per-player flags. The per-turn flags are reset for
// both players at every turn change.
type playerState struct {
	actionUsed  bool
	powerUpUsed bool
	hasShot     bool

	pending    PowerUp
	armed      Modifiers
	bonusTurns int
}

// Match is the turn/action/power-up state machine of one battle.
// It owns the grid, the roster and the projectile in flight. A Match is
// not safe for concurrent use.
type Match struct {
	rules Rules
	rng   RNG
	grid  *Grid
	units []Unit

	active     Player
	players    [2]playerState
	selected   int // unit ID or noSelection
	mode       Mode
	strategy   Strategy // valid in ModeAwaitingMove
	route      Route    // cells still to enter, start excluded
	projectile *Projectile

	elapsed     float64
	turnElapsed float64
	turn        int
	tick        uint64

	outcome Outcome
	reason  EndReason
	events  []Event
}

// NewMatch generates a grid and deploys both rosters from rules.
func NewMatch(rules Rules, rng RNG) (*Match, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	grid, err := GenerateGrid(rules.GridSize, rules.ObstaclePercent, rng)
	if err != nil {
		return nil, err
	}
	units, err := Deploy(grid, rules.UnitsPerCategory, rng)
	if err != nil {
		return nil, err
	}
	return NewMatchWithRoster(rules, grid, units, rng)
}

// Deploy places perCategory units of every category on random free
// cells of their faction's half: player 1 holds the left columns
// [0, size/2), player 2 the rest. IDs are assigned in roster order.
func Deploy(g *Grid, perCategory int, rng RNG) ([]Unit, error) {
	size := g.Size()
	half := size / 2
	regions := [2]core.Rect{
		Player1: core.NewRect(0, 0, half, size),
		Player2: core.NewRect(half, 0, size-half, size),
	}

	units := make([]Unit, 0, perCategory*len(Categories))
	for _, cat := range Categories {
		for range perCategory {
			candidates := g.FreeCells(regions[cat.Player()], units)
			if len(candidates) == 0 {
				return nil, fmt.Errorf("%w: %s half is full", ErrNoRoom, cat.Player())
			}
			pos := candidates[rng.Intn(len(candidates))]
			units = append(units, NewUnit(len(units), pos, cat))
		}
	}
	return units, nil
}

// NewMatchWithRoster starts a match on an existing grid and roster.
// Units must stand on distinct free cells and have distinct IDs.
func NewMatchWithRoster(rules Rules, grid *Grid, units []Unit, rng RNG) (*Match, error) {
	rules.GridSize = grid.Size()
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	ids := make(map[int]bool, len(units))
	cells := make(map[Cell]bool, len(units))
	for _, u := range units {
		switch {
		case ids[u.ID]:
			return nil, fmt.Errorf("battle: duplicate unit id %d", u.ID)
		case !grid.IsFree(u.Pos):
			return nil, fmt.Errorf("battle: unit %d placed on %s which is not free", u.ID, u.Pos)
		case cells[u.Pos]:
			return nil, fmt.Errorf("battle: two units share %s", u.Pos)
		case u.Destroyed():
			return nil, fmt.Errorf("battle: unit %d has no health", u.ID)
		}
		ids[u.ID] = true
		cells[u.Pos] = true
	}

	m := &Match{
		rules:    rules,
		rng:      rng,
		grid:     grid,
		units:    append([]Unit(nil), units...),
		selected: noSelection,
	}
	m.startTurn(Player1)
	return m, nil
}

func (m *Match) emit(e Event) {
	e.Turn = m.turn
	e.Time = m.elapsed
	m.events = append(m.events, e)
}

// Events returns the events recorded since the previous call.
func (m *Match) Events() []Event {
	out := m.events
	m.events = nil
	return out
}

func (m *Match) selectedUnit() *Unit {
	if m.selected == noSelection {
		return nil
	}
	if i := unitIndexByID(m.units, m.selected); i >= 0 {
		return &m.units[i]
	}
	return nil
}

// SelectAt selects the active player's unit standing on c. Selection can
// change freely until the player uses the turn's action.
func (m *Match) SelectAt(c Cell) bool {
	if m.Over() || m.mode != ModeIdle || m.players[m.active].actionUsed {
		return false
	}
	i := unitIndexAt(m.units, c)
	if i < 0 || m.units[i].Player() != m.active {
		return false
	}
	m.selected = m.units[i].ID
	m.emit(Event{Kind: EventUnitSelected, Player: m.active, UnitID: m.selected, Cell: c})
	return true
}

// RequestMove spends the turn's action on moving the selected unit.
// The strategy is drawn per request: heavy units use ShortestPath with
// HeavyPathChance, light units WeightedPath with LightPathChance, and a
// random step otherwise. An armed move-precision power-up skips the draw.
// Targeted strategies wait for ClickTarget; a random step starts at once.
func (m *Match) RequestMove() bool {
	u := m.selectedUnit()
	ps := &m.players[m.active]
	if m.Over() || u == nil || m.mode != ModeIdle || ps.actionUsed {
		return false
	}
	ps.actionUsed = true

	strategy := StrategyRandom
	if ps.armed.Take(PowerUpMovePrecision) || m.rng.Intn(100) < m.rules.pathChance(u.Category) {
		strategy = strategyFor(u.Category)
	}
	m.emit(Event{Kind: EventMoveDrawn, Player: m.active, UnitID: u.ID, Cell: u.Pos, Strategy: strategy})

	if strategy.NeedsTarget() {
		m.mode = ModeAwaitingMove
		m.strategy = strategy
		return true
	}
	m.setRoute(u, u.Pos, RandomStep(m.grid, u.Pos, m.units, m.rng))
	return true
}

func (m *Match) setRoute(u *Unit, target Cell, route Route) {
	if route.Empty() {
		m.route = nil
		m.emit(Event{Kind: EventNoRoute, Player: m.active, UnitID: u.ID, Cell: u.Pos, Target: target})
		return
	}
	m.route = append(Route(nil), route[1:]...)
	m.emit(Event{
		Kind:   EventRouteFound,
		Player: m.active,
		UnitID: u.ID,
		Cell:   u.Pos,
		Target: route[len(route)-1],
		Steps:  route.Steps(),
	})
}

// RequestShoot puts the selected unit into aiming mode. The action is
// spent when the aim click fires.
func (m *Match) RequestShoot() bool {
	ps := &m.players[m.active]
	if m.Over() || m.selectedUnit() == nil || m.mode != ModeIdle || ps.actionUsed {
		return false
	}
	m.mode = ModeShooting
	return true
}

// ClickTarget resolves a pending move or shot at c. Invalid targets are
// ignored and leave the pending state untouched.
func (m *Match) ClickTarget(c Cell) bool {
	u := m.selectedUnit()
	if m.Over() || u == nil {
		return false
	}

	switch m.mode {
	case ModeAwaitingMove:
		if !m.grid.IsFreeOf(c, m.units) {
			return false
		}
		route := FindRoute(m.strategy, m.grid, u.Pos, c, m.units)
		m.mode = ModeIdle
		m.setRoute(u, c, route)
		return true

	case ModeShooting:
		if !m.grid.InBounds(c) || c == u.Pos {
			return false
		}
		p, err := NewProjectile(u.Pos, c, u.ID, m.rules.Ballistics)
		if err != nil {
			return false
		}
		ps := &m.players[m.active]
		if ps.armed.Take(PowerUpAttackPrecision) {
			p.EnableMirror()
		}
		if ps.armed.Take(PowerUpAttackPower) {
			p.Amplify(2)
		}
		m.projectile = p
		m.mode = ModeIdle
		ps.actionUsed = true
		ps.hasShot = true
		m.emit(Event{Kind: EventShotFired, Player: m.active, UnitID: u.ID, Cell: u.Pos, Target: c})
		return true
	}
	return false
}

// Click routes a cell click: it resolves a pending target if there is
// one and selects a unit otherwise.
func (m *Match) Click(c Cell) bool {
	if m.mode != ModeIdle {
		return m.ClickTarget(c)
	}
	return m.SelectAt(c)
}

// CancelTarget abandons a pending target. A cancelled shot keeps the
// action available; a cancelled move forfeits it.
func (m *Match) CancelTarget() bool {
	if m.mode == ModeIdle {
		return false
	}
	m.mode = ModeIdle
	return true
}

// RequestPowerUp activates the active player's pending power-up, spending
// the turn's action. Double turn queues a bonus turn; the others arm a
// modifier for the player's next move or shot.
func (m *Match) RequestPowerUp() bool {
	ps := &m.players[m.active]
	if m.Over() || m.mode != ModeIdle || ps.actionUsed || ps.powerUpUsed || ps.pending == PowerUpNone {
		return false
	}
	p := ps.pending
	ps.pending = PowerUpNone
	ps.powerUpUsed = true
	ps.actionUsed = true

	if p == PowerUpDoubleTurn {
		ps.bonusTurns++
	} else {
		ps.armed.Add(p)
	}
	m.emit(Event{Kind: EventPowerUpActivated, Player: m.active, PowerUp: p})
	return true
}

// Tick advances the match by dt seconds: frame-cadence power-up roll,
// projectile update, roster purge, clocks, end check, turn change and
// one route step. It is a no-op once the match is over.
func (m *Match) Tick(dt float64) {
	if m.Over() {
		return
	}
	m.tick++

	if m.rules.PowerUpCadence == CadenceFrame {
		m.rollPowerUp(m.active)
	}

	m.updateProjectile()
	m.purge()

	m.elapsed += dt
	m.turnElapsed += dt

	if m.checkEnd() {
		return
	}

	if m.turnElapsed >= m.rules.TurnSeconds || m.players[m.active].bonusTurns > 0 {
		m.endTurn()
		return
	}

	m.advanceRoute()
}

func (m *Match) updateProjectile() {
	if m.projectile == nil {
		return
	}
	hit, ok := m.projectile.Update(m.grid, m.units, m.rng)
	if ok {
		health := 0
		if i := unitIndexByID(m.units, hit.UnitID); i >= 0 {
			health = m.units[i].Health
		}
		m.emit(Event{
			Kind:   EventUnitHit,
			Player: m.active,
			UnitID: hit.UnitID,
			Cell:   hit.At,
			Damage: hit.Damage,
			Health: health,
		})
		if hit.Destroyed {
			m.emit(Event{Kind: EventUnitDestroyed, Player: hit.Category.Player(), UnitID: hit.UnitID, Cell: hit.At})
		}
	}
	if m.projectile.Destroyed {
		m.projectile = nil
	}
}

// purge drops destroyed units and any selection that referred to them.
func (m *Match) purge() {
	kept := m.units[:0]
	for _, u := range m.units {
		if !u.Destroyed() {
			kept = append(kept, u)
		}
	}
	m.units = kept

	if m.selected != noSelection && m.selectedUnit() == nil {
		m.selected = noSelection
		m.route = nil
		m.mode = ModeIdle
	}
}

func (m *Match) checkEnd() bool {
	s1, s2 := m.Survivors()
	if m.RemainingSeconds() > 0 && s1 > 0 && s2 > 0 {
		return false
	}

	m.reason = EndClock
	if s1 == 0 || s2 == 0 {
		m.reason = EndEliminated
	}
	switch {
	case s1 > s2:
		m.outcome = OutcomePlayer1
	case s2 > s1:
		m.outcome = OutcomePlayer2
	default:
		m.outcome = OutcomeDraw
	}

	m.mode = ModeIdle
	m.route = nil
	m.projectile = nil
	m.emit(Event{Kind: EventMatchEnded, Outcome: m.outcome, Reason: m.reason})
	return true
}

func (m *Match) endTurn() {
	ps := &m.players[m.active]
	next := m.active.Other()
	if ps.bonusTurns > 0 {
		ps.bonusTurns--
		next = m.active
	}
	m.startTurn(next)
}

func (m *Match) startTurn(p Player) {
	m.active = p
	m.turn++
	m.turnElapsed = 0

	m.selected = noSelection
	m.mode = ModeIdle
	m.route = nil
	m.projectile = nil
	for i := range m.players {
		m.players[i].actionUsed = false
		m.players[i].powerUpUsed = false
		m.players[i].hasShot = false
	}

	m.emit(Event{Kind: EventTurnStarted, Player: p})

	if m.rules.PowerUpCadence == CadenceTurn {
		m.rollPowerUp(p)
	}
}

// rollPowerUp grants a random power-up with PowerUpChance percent
// probability to a player that holds none.
func (m *Match) rollPowerUp(p Player) {
	ps := &m.players[p]
	if ps.pending != PowerUpNone || m.rules.PowerUpChance <= 0 {
		return
	}
	if m.rng.Intn(100) >= m.rules.PowerUpChance {
		return
	}
	ps.pending = Grantable[m.rng.Intn(len(Grantable))]
	m.emit(Event{Kind: EventPowerUpGranted, Player: p, PowerUp: ps.pending})
}

// advanceRoute moves the selected unit one cell along its route.
func (m *Match) advanceRoute() {
	if len(m.route) == 0 {
		return
	}
	u := m.selectedUnit()
	if u == nil {
		m.route = nil
		return
	}
	next := m.route[0]
	if !m.grid.IsFreeOf(next, m.units) {
		m.route = nil
		return
	}
	u.Pos = next
	m.route = m.route[1:]
	if len(m.route) == 0 {
		m.route = nil
		m.emit(Event{Kind: EventArrived, Player: m.active, UnitID: u.ID, Cell: u.Pos})
	}
}

// Grid returns the battlefield.
func (m *Match) Grid() *Grid { return m.grid }

// Rules returns the match settings.
func (m *Match) Rules() Rules { return m.rules }

// Units returns a copy of the living roster in roster order.
func (m *Match) Units() []Unit {
	return append([]Unit(nil), m.units...)
}

// Unit returns the unit with the given ID.
func (m *Match) Unit(id int) (Unit, bool) {
	if i := unitIndexByID(m.units, id); i >= 0 {
		return m.units[i], true
	}
	return Unit{}, false
}

// UnitAt returns the unit standing on c.
func (m *Match) UnitAt(c Cell) (Unit, bool) {
	if i := unitIndexAt(m.units, c); i >= 0 {
		return m.units[i], true
	}
	return Unit{}, false
}

// Active returns the player whose turn it is.
func (m *Match) Active() Player { return m.active }

// Selected returns the selected unit's ID.
func (m *Match) Selected() (int, bool) {
	return m.selected, m.selected != noSelection
}

// Mode returns the pending action.
func (m *Match) Mode() Mode { return m.mode }

// PendingStrategy returns the strategy waiting for a destination click.
func (m *Match) PendingStrategy() (Strategy, bool) {
	return m.strategy, m.mode == ModeAwaitingMove
}

// Route returns the cells the selected unit has yet to enter.
func (m *Match) Route() Route {
	return append(Route(nil), m.route...)
}

// Projectile returns the position of the projectile in flight.
func (m *Match) Projectile() (core.Vec2, bool) {
	if m.projectile == nil {
		return core.Vec2{}, false
	}
	return m.projectile.Pos, true
}

// Turn returns the 1-based turn number.
func (m *Match) Turn() int { return m.turn }

// Ticks returns the number of ticks processed.
func (m *Match) Ticks() uint64 { return m.tick }

// Elapsed returns the match seconds elapsed.
func (m *Match) Elapsed() float64 { return m.elapsed }

// RemainingSeconds returns the match clock, never below zero.
func (m *Match) RemainingSeconds() float64 {
	return max(m.rules.MatchSeconds-m.elapsed, 0)
}

// RemainingTurnSeconds returns the turn clock, never below zero.
func (m *Match) RemainingTurnSeconds() float64 {
	return max(m.rules.TurnSeconds-m.turnElapsed, 0)
}

// PendingPowerUp returns the power-up p holds but has not activated.
func (m *Match) PendingPowerUp(p Player) PowerUp { return m.players[p].pending }

// Armed returns the modifiers p has activated but not yet spent.
func (m *Match) Armed(p Player) Modifiers { return m.players[p].armed }

// BonusTurns returns the number of queued extra turns for p.
func (m *Match) BonusTurns(p Player) int { return m.players[p].bonusTurns }

// ActionUsed reports whether p has spent this turn's action.
func (m *Match) ActionUsed(p Player) bool { return m.players[p].actionUsed }

// HasShot reports whether p fired this turn.
func (m *Match) HasShot(p Player) bool { return m.players[p].hasShot }

// Survivors returns the number of living units per player.
func (m *Match) Survivors() (p1, p2 int) {
	for _, u := range m.units {
		if u.Player() == Player1 {
			p1++
		} else {
			p2++
		}
	}
	return p1, p2
}

// Over reports whether the match has ended.
func (m *Match) Over() bool { return m.outcome != OutcomeNone }

// Outcome returns the result, OutcomeNone while running.
func (m *Match) Outcome() Outcome { return m.outcome }

// EndReason returns why the match ended.
func (m *Match) EndReason() EndReason { return m.reason }
