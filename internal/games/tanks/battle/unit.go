package battle

// Player identifies one of the two factions.
type Player uint8

const (
	Player1 Player = iota
	Player2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// String returns a display name.
func (p Player) String() string {
	if p == Player1 {
		return "Player 1"
	}
	return "Player 2"
}

// Category is a unit's color class. It fixes both faction and durability.
type Category uint8

const (
	CategoryBlue Category = iota
	CategoryRed
	CategoryCyan
	CategoryYellow
)

// Categories lists all categories in roster order.
var Categories = [4]Category{CategoryBlue, CategoryRed, CategoryCyan, CategoryYellow}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryBlue:
		return "blue"
	case CategoryRed:
		return "red"
	case CategoryCyan:
		return "cyan"
	case CategoryYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Player returns the faction that owns units of this category.
func (c Category) Player() Player {
	if c == CategoryBlue || c == CategoryRed {
		return Player1
	}
	return Player2
}

// Heavy reports whether the category is the high-durability class.
func (c Category) Heavy() bool {
	return c == CategoryBlue || c == CategoryCyan
}

// MaxHealth is the health every unit spawns with.
const MaxHealth = 100

// Unit is a tank on the battlefield.
type Unit struct {
	ID       int
	Pos      Cell
	Category Category
	Health   int
}

// NewUnit creates a unit at full health.
func NewUnit(id int, pos Cell, cat Category) Unit {
	return Unit{ID: id, Pos: pos, Category: cat, Health: MaxHealth}
}

// Player returns the owning faction.
func (u Unit) Player() Player {
	return u.Category.Player()
}

// TakeDamage lowers health by amount, never below zero.
func (u *Unit) TakeDamage(amount int) {
	u.Health -= amount
	if u.Health < 0 {
		u.Health = 0
	}
}

// Destroyed reports whether the unit has no health left.
func (u Unit) Destroyed() bool {
	return u.Health <= 0
}

func unitIndexByID(units []Unit, id int) int {
	for i := range units {
		if units[i].ID == id {
			return i
		}
	}
	return -1
}

func unitIndexAt(units []Unit, c Cell) int {
	for i := range units {
		if units[i].Pos == c {
			return i
		}
	}
	return -1
}
