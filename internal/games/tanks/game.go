// Package tanks adapts the battle engine to the platform: scenario
// registration, cursor and pointer input, HUD rendering and match reports.
package tanks

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// Screen layout: one HUD row, then the boxed board. Every cell is two
// characters wide so the board looks square in a terminal.
const (
	hudHeight  = 1
	boardX     = 1
	boardY     = hudHeight + 1
	cellWidth  = 2
	panelWidth = 28
)

var logger = log.New(io.Discard)

// SetLogger sets the logger that receives match events.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements a tank battle scenario.
type Game struct {
	scenario Scenario

	rng         *rand.Rand
	seed        int64
	rules       battle.Rules
	match       *battle.Match
	tickSeconds float64

	cursor  battle.Cell
	message string

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	err      error
}

// New creates a game for the given scenario.
func New(s Scenario) *Game {
	return &Game{scenario: s}
}

func init() {
	for _, s := range Scenarios {
		registry.Register(s.ID, func() registry.Game {
			return New(s)
		})
	}
}

// ID returns the scenario identifier.
func (g *Game) ID() string { return g.scenario.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.scenario.Title }

// Description returns a one-line summary of the scenario.
func (g *Game) Description() string { return g.scenario.Description }

// Reset loads the rules and starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.tickSeconds = cfg.TickSeconds()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.message = ""
	g.match = nil

	g.rules, g.err = ScenarioRules(g.scenario)
	if g.err != nil {
		logger.Error("cannot load rules", "scenario", g.scenario.ID, "err", g.err)
		return
	}
	g.start()
}

// start creates the match from g.rules and g.seed.
func (g *Game) start() {
	g.match, g.err = battle.NewMatch(g.rules, battle.NewRNG(g.seed))
	if g.err != nil {
		logger.Error("cannot start match", "scenario", g.scenario.ID, "err", g.err)
		return
	}
	size := g.rules.GridSize
	g.cursor = battle.C(size/4, size/2)
	g.checkSize()
	logger.Info("match started", "scenario", g.scenario.ID, "seed", g.seed, "grid", size)
	g.absorb(g.match.Events())
}

func (g *Game) requiredSize() (w, h int) {
	size := g.rules.GridSize
	return boardX + size*cellWidth + 1 + panelWidth, boardY + size + 2
}

func (g *Game) checkSize() {
	w, h := g.requiredSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Resize updates the screen dimensions without restarting the match.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkSize()
}

// Step processes input and advances the match by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if input.Has(core.ActionRestart) && g.match.Over() {
		g.seed = g.rng.Int63()
		g.paused = false
		g.start()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.match.Over() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.match.Over() {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	g.match.Tick(g.tickSeconds)
	g.absorb(g.match.Events())

	return core.StepResult{State: g.State()}
}

// processInput maps platform actions onto match intents.
func (g *Game) processInput(input core.InputFrame) {
	size := g.rules.GridSize
	switch {
	case input.Has(core.ActionUp):
		g.cursor.Y = core.Clamp(g.cursor.Y-1, 0, size-1)
	case input.Has(core.ActionDown):
		g.cursor.Y = core.Clamp(g.cursor.Y+1, 0, size-1)
	case input.Has(core.ActionLeft):
		g.cursor.X = core.Clamp(g.cursor.X-1, 0, size-1)
	case input.Has(core.ActionRight):
		g.cursor.X = core.Clamp(g.cursor.X+1, 0, size-1)
	}

	if input.Click != nil {
		if c, ok := g.screenToCell(*input.Click); ok {
			g.cursor = c
			g.match.Click(c)
		}
	}
	if input.Has(core.ActionConfirm) {
		g.match.Click(g.cursor)
	}
	if input.Has(core.ActionBack) {
		if g.match.CancelTarget() {
			g.message = "Cancelled"
		}
	}

	switch {
	case input.Has(core.ActionMove):
		if !g.match.RequestMove() {
			g.message = g.refusal()
		}
	case input.Has(core.ActionShoot):
		if g.match.RequestShoot() {
			g.message = "Aim: pick a target cell"
		} else {
			g.message = g.refusal()
		}
	case input.Has(core.ActionPowerUp):
		if !g.match.RequestPowerUp() {
			g.message = "No power-up available"
		}
	}
}

// refusal explains why a move or shot request was ignored.
func (g *Game) refusal() string {
	switch {
	case g.match.ActionUsed(g.match.Active()):
		return "Action already used this turn"
	case g.match.Mode() != battle.ModeIdle:
		return "Finish or cancel the pending " + g.match.Mode().String()
	default:
		return "Select one of your tanks first"
	}
}

// absorb logs events and keeps the latest as the status message.
func (g *Game) absorb(events []battle.Event) {
	LogEvents(logger, events)
	if len(events) > 0 {
		g.message = Describe(events[len(events)-1])
	}
}

// screenToCell maps a screen position to a grid cell.
func (g *Game) screenToCell(p core.Point) (battle.Cell, bool) {
	if g.match == nil {
		return battle.Cell{}, false
	}
	size := g.match.Grid().Size()
	if !core.NewRect(boardX, boardY, size*cellWidth, size).Contains(p.X, p.Y) {
		return battle.Cell{}, false
	}
	return battle.C((p.X-boardX)/cellWidth, p.Y-boardY), true
}

// cellToScreen returns the screen position of a cell's left character.
func cellToScreen(c battle.Cell) (x, y int) {
	return boardX + c.X*cellWidth, boardY + c.Y
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused}
	switch {
	case g.err != nil:
		st.GameOver = true
		st.Status = g.err.Error()
	case g.match == nil:
	case g.match.Over():
		st.GameOver = true
		st.Status = g.match.Outcome().String()
	default:
		st.Status = g.message
	}
	return st
}

// Match returns the running match.
func (g *Game) Match() *battle.Match { return g.match }

// Report returns the result of a finished match.
func (g *Game) Report() (core.MatchReport, bool) {
	if g.match == nil || !g.match.Over() {
		return core.MatchReport{}, false
	}
	return reportFor(g.scenario.ID, g.seed, g.match), true
}

// reportFor summarizes a match for the history ledger.
func reportFor(scenario string, seed int64, m *battle.Match) core.MatchReport {
	s1, s2 := m.Survivors()
	r := core.MatchReport{
		Scenario:     scenario,
		Seed:         seed,
		Survivors1:   s1,
		Survivors2:   s2,
		EndReason:    string(m.EndReason()),
		DurationSecs: m.Elapsed(),
		Turns:        m.Turn(),
	}
	switch m.Outcome() {
	case battle.OutcomePlayer1:
		r.Winner = core.WinnerPlayer1
	case battle.OutcomePlayer2:
		r.Winner = core.WinnerPlayer2
	default:
		r.Winner = core.WinnerDraw
	}
	return r
}
