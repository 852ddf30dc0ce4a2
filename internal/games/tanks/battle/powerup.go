package battle

// PowerUp is a one-shot bonus a player can hold and activate.
type PowerUp uint8

const (
	PowerUpNone PowerUp = iota
	PowerUpDoubleTurn
	PowerUpMovePrecision
	PowerUpAttackPrecision
	PowerUpAttackPower
)

type powerUpInfo struct {
	name   string
	effect string
}

var powerUpTable = [...]powerUpInfo{
	PowerUpNone:            {"none", ""},
	PowerUpDoubleTurn:      {"double turn", "play again after this turn"},
	PowerUpMovePrecision:   {"move precision", "next move picks its cell"},
	PowerUpAttackPrecision: {"attack precision", "next shot bounces cleanly"},
	PowerUpAttackPower:     {"attack power", "next shot hits double"},
}

// Grantable lists the power-ups that can be awarded, in draw order.
var Grantable = [4]PowerUp{
	PowerUpDoubleTurn,
	PowerUpMovePrecision,
	PowerUpAttackPrecision,
	PowerUpAttackPower,
}

// String returns the power-up name.
func (p PowerUp) String() string {
	if int(p) < len(powerUpTable) {
		return powerUpTable[p].name
	}
	return "unknown"
}

// Effect describes what activating the power-up does.
func (p PowerUp) Effect() string {
	if int(p) < len(powerUpTable) {
		return powerUpTable[p].effect
	}
	return ""
}

// Modifiers is the set of activated power-ups waiting for the player's
// next move or shot.
type Modifiers uint8

func modBit(p PowerUp) Modifiers {
	return 1 << p
}

// Has reports whether p is armed.
func (m Modifiers) Has(p PowerUp) bool {
	return m&modBit(p) != 0
}

// Add arms p.
func (m *Modifiers) Add(p PowerUp) {
	*m |= modBit(p)
}

// Take disarms p and reports whether it was armed.
func (m *Modifiers) Take(p PowerUp) bool {
	had := m.Has(p)
	*m &^= modBit(p)
	return had
}

// List returns the armed power-ups in draw order.
func (m Modifiers) List() []PowerUp {
	var out []PowerUp
	for _, p := range Grantable {
		if m.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
