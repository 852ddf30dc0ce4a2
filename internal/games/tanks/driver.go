package tanks

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
)

// RandomDriver plays both sides by issuing random input events, the same
// ones a player can issue. It is used for headless simulation and soak
// tests.
type RandomDriver struct {
	rng *rand.Rand

	// Every is the number of ticks between two decisions.
	Every int
	wait  int
}

// NewRandomDriver creates a driver with its own random stream.
func NewRandomDriver(seed int64) *RandomDriver {
	return &RandomDriver{rng: rand.New(rand.NewSource(seed)), Every: 30}
}

// Act issues at most one input event to m.
func (d *RandomDriver) Act(m *battle.Match) {
	if m.Over() {
		return
	}
	if d.wait > 0 {
		d.wait--
		return
	}
	d.wait = d.Every

	active := m.Active()
	switch m.Mode() {
	case battle.ModeAwaitingMove:
		free := m.Grid().FreeCells(board(m), m.Units())
		if len(free) > 0 {
			m.ClickTarget(free[d.rng.Intn(len(free))])
		}
		return
	case battle.ModeShooting:
		m.ClickTarget(d.aim(m, active))
		return
	}

	if m.ActionUsed(active) {
		return
	}
	if _, ok := m.Selected(); !ok {
		own := d.ownUnits(m, active)
		if len(own) > 0 {
			m.SelectAt(own[d.rng.Intn(len(own))].Pos)
		}
		return
	}

	switch r := d.rng.Intn(10); {
	case r < 2 && m.PendingPowerUp(active) != battle.PowerUpNone:
		m.RequestPowerUp()
	case r < 6:
		m.RequestShoot()
	default:
		m.RequestMove()
	}
}

// aim picks an enemy most of the time and a random cell otherwise.
func (d *RandomDriver) aim(m *battle.Match, p battle.Player) battle.Cell {
	enemies := d.ownUnits(m, p.Other())
	if len(enemies) > 0 && d.rng.Intn(4) > 0 {
		return enemies[d.rng.Intn(len(enemies))].Pos
	}
	size := m.Grid().Size()
	return battle.C(d.rng.Intn(size), d.rng.Intn(size))
}

func (d *RandomDriver) ownUnits(m *battle.Match, p battle.Player) []battle.Unit {
	var out []battle.Unit
	for _, u := range m.Units() {
		if u.Player() == p {
			out = append(out, u)
		}
	}
	return out
}

func board(m *battle.Match) core.Rect {
	size := m.Grid().Size()
	return core.NewRect(0, 0, size, size)
}

// SimulateOptions configures a headless match.
type SimulateOptions struct {
	Seed     int64
	TickRate int
	MaxTicks int // 0 runs until the match clock ends it
	Logger   *log.Logger
}

// Simulate plays one match of scenario s with a RandomDriver and returns
// its report. A match stopped by MaxTicks is reported with the survivors
// at that point and end reason "aborted".
func Simulate(s Scenario, opts SimulateOptions) (core.MatchReport, error) {
	rules, err := ScenarioRules(s)
	if err != nil {
		return core.MatchReport{}, err
	}
	return SimulateRules(s.ID, rules, opts)
}

// SimulateRules is Simulate with explicit rules.
func SimulateRules(scenario string, rules battle.Rules, opts SimulateOptions) (core.MatchReport, error) {
	m, err := battle.NewMatch(rules, battle.NewRNG(opts.Seed))
	if err != nil {
		return core.MatchReport{}, fmt.Errorf("tanks: cannot start %s: %w", scenario, err)
	}

	dt := core.RuntimeConfig{TickRate: opts.TickRate}.TickSeconds()
	driver := NewRandomDriver(opts.Seed + 1)
	LogEvents(opts.Logger, m.Events())

	for ticks := 0; !m.Over(); ticks++ {
		if opts.MaxTicks > 0 && ticks >= opts.MaxTicks {
			r := reportFor(scenario, opts.Seed, m)
			r.EndReason = "aborted"
			return r, nil
		}
		driver.Act(m)
		m.Tick(dt)
		LogEvents(opts.Logger, m.Events())
	}
	return reportFor(scenario, opts.Seed, m), nil
}
