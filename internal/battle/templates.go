package battle

// UnitTemplate is the immutable stat block a unit is spawned from.
type UnitTemplate struct {
	Name        string
	MaxHP       int
	Attack      int
	Defense     int
	MoveRange   int // movement budget in cells per turn
	AttackRange int // Chebyshev targeting distance, 1 = melee
}

// StatBonus is the progression bonus applied on top of a template at spawn.
// Zero value = no bonus.
type StatBonus struct {
	MaxHP   int
	Attack  int
	Defense int
}

// Placement describes one unit of the battle setup: what to spawn, for whom,
// and where.
type Placement struct {
	Template UnitTemplate
	Bonus    StatBonus
	Team     Team
	Cell     Cell
}

// Stock templates. Melee units trade range for durability; the archer hits
// from two cells out but folds quickly when cornered.
var (
	TemplateKnight  = UnitTemplate{Name: "knight", MaxHP: 34, Attack: 12, Defense: 8, MoveRange: 3, AttackRange: 1}
	TemplateArcher  = UnitTemplate{Name: "archer", MaxHP: 22, Attack: 10, Defense: 3, MoveRange: 3, AttackRange: 2}
	TemplatePikeman = UnitTemplate{Name: "pikeman", MaxHP: 28, Attack: 11, Defense: 6, MoveRange: 2, AttackRange: 1}
	TemplateRaider  = UnitTemplate{Name: "raider", MaxHP: 24, Attack: 13, Defense: 4, MoveRange: 4, AttackRange: 1}
	TemplateBrute   = UnitTemplate{Name: "brute", MaxHP: 42, Attack: 15, Defense: 5, MoveRange: 2, AttackRange: 1}
)

// TemplateByName resolves a stock template. Unknown names fall back to the
// knight so malformed setup data degrades instead of crashing.
func TemplateByName(name string) UnitTemplate {
	switch name {
	case "knight":
		return TemplateKnight
	case "archer":
		return TemplateArcher
	case "pikeman":
		return TemplatePikeman
	case "raider":
		return TemplateRaider
	case "brute":
		return TemplateBrute
	default:
		return TemplateKnight
	}
}
