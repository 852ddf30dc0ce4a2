package battle

import "testing"

func TestPurgeClearsDeadSelection(t *testing.T) {
	g, err := ParseGrid([]string{"....", "....", "....", "...."})
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}
	rules := DefaultRules()
	rules.PowerUpChance = 0
	units := []Unit{
		NewUnit(0, C(0, 0), CategoryBlue),
		NewUnit(1, C(0, 2), CategoryRed),
		NewUnit(2, C(3, 3), CategoryCyan),
	}
	m, err := NewMatchWithRoster(rules, g, units, NewRNG(1))
	if err != nil {
		t.Fatalf("NewMatchWithRoster() failed: %v", err)
	}

	m.SelectAt(C(0, 0))
	m.route = Route{C(1, 0), C(2, 0)}
	m.units[0].Health = 0

	m.Tick(0.1)
	if _, ok := m.Selected(); ok {
		t.Error("selection should be cleared when the unit is destroyed")
	}
	if len(m.route) != 0 {
		t.Errorf("route = %v, expected empty", m.route)
	}
	if len(m.units) != 2 {
		t.Errorf("roster has %d units, expected 2", len(m.units))
	}
	if m.Over() {
		t.Error("player 1 still has a unit")
	}
}

func TestAdvanceRouteStopsWhenBlocked(t *testing.T) {
	g, _ := ParseGrid([]string{"....", "....", "....", "...."})
	rules := DefaultRules()
	rules.PowerUpChance = 0
	m, err := NewMatchWithRoster(rules, g, []Unit{
		NewUnit(0, C(0, 0), CategoryBlue),
		NewUnit(1, C(3, 3), CategoryCyan),
	}, NewRNG(1))
	if err != nil {
		t.Fatalf("NewMatchWithRoster() failed: %v", err)
	}

	m.SelectAt(C(0, 0))
	m.route = Route{C(1, 0), C(2, 0)}
	m.units[1].Pos = C(2, 0)

	m.Tick(0.1)
	m.Tick(0.1)
	if u, _ := m.Unit(0); u.Pos != C(1, 0) {
		t.Errorf("unit at %v, expected (1,0)", u.Pos)
	}
	if m.route != nil {
		t.Errorf("route = %v, expected nil after the path was blocked", m.route)
	}
}

func TestBonusTurnsKeepPlayerActive(t *testing.T) {
	g, _ := ParseGrid([]string{"....", "....", "....", "...."})
	rules := DefaultRules()
	rules.PowerUpChance = 0
	m, err := NewMatchWithRoster(rules, g, []Unit{
		NewUnit(0, C(0, 0), CategoryBlue),
		NewUnit(1, C(3, 3), CategoryCyan),
	}, NewRNG(1))
	if err != nil {
		t.Fatalf("NewMatchWithRoster() failed: %v", err)
	}
	m.players[Player1].bonusTurns = 2
	startTurn := m.Turn()

	for i, expected := range []int{1, 0} {
		m.Tick(0.1)
		if m.Active() != Player1 {
			t.Fatalf("tick %d: active = %v, expected player 1", i+1, m.Active())
		}
		if m.BonusTurns(Player1) != expected {
			t.Errorf("tick %d: BonusTurns() = %d, expected %d", i+1, m.BonusTurns(Player1), expected)
		}
		if m.Turn() != startTurn+i+1 {
			t.Errorf("tick %d: Turn() = %d, expected %d", i+1, m.Turn(), startTurn+i+1)
		}
	}

	m.Tick(0.1)
	if m.Active() != Player1 || m.Turn() != startTurn+2 {
		t.Errorf("active = %v turn = %d, expected no change without bonus turns", m.Active(), m.Turn())
	}
}
