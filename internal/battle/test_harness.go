package battle

// TestBattle is a headless battle harness used by tests and the headless
// runner. It drives the same Battle the windowed game uses, with helpers
// that stand in for the pointer input and a recorder for notifications.
type TestBattle struct {
	Battle *Battle
	Log    *BattleLog

	// Captured notifications, in delivery order.
	Deaths  []*Unit
	Ended   bool
	Victory bool
}

// battleOptionKind controls the pass in which an option is applied.
type battleOptionKind int

const (
	battleOptInfra battleOptionKind = iota // grid size, verbose; applied first
	battleOptUnit                          // placements
	battleOptPolicy                        // enemy policy; applied after construction
)

// BattleOption is a builder function applied during construction.
type BattleOption struct {
	kind  battleOptionKind
	infra func(*testConfig)
	after func(*TestBattle)
}

type testConfig struct {
	cols, rows int
	verbose    bool
	placements []Placement
}

// WithGridSize sets the battlefield dimensions in cells.
func WithGridSize(cols, rows int) BattleOption {
	return BattleOption{kind: battleOptInfra, infra: func(c *testConfig) {
		c.cols = cols
		c.rows = rows
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) BattleOption {
	return BattleOption{kind: battleOptInfra, infra: func(c *testConfig) {
		c.verbose = v
	}}
}

// WithPlayerUnit places a stock-template player unit.
func WithPlayerUnit(template string, x, y int) BattleOption {
	return withPlacement(Placement{Template: TemplateByName(template), Team: TeamPlayer, Cell: Cell{X: x, Y: y}})
}

// WithEnemyUnit places a stock-template enemy unit.
func WithEnemyUnit(template string, x, y int) BattleOption {
	return withPlacement(Placement{Template: TemplateByName(template), Team: TeamEnemy, Cell: Cell{X: x, Y: y}})
}

// WithPlacement places a fully specified unit. Tests use this for exact
// stat blocks.
func WithPlacement(p Placement) BattleOption {
	return withPlacement(p)
}

func withPlacement(p Placement) BattleOption {
	return BattleOption{kind: battleOptUnit, infra: func(c *testConfig) {
		c.placements = append(c.placements, p)
	}}
}

// WithPolicy installs an enemy policy.
func WithPolicy(p Policy) BattleOption {
	return BattleOption{kind: battleOptPolicy, after: func(tb *TestBattle) {
		tb.Battle.SetPolicy(p)
	}}
}

// NewTestBattle constructs a harness from the given options in ordered
// passes: infrastructure, placements, then post-construction options.
func NewTestBattle(opts ...BattleOption) *TestBattle {
	cfg := &testConfig{cols: 8, rows: 8}
	for _, o := range opts {
		if o.kind == battleOptInfra {
			o.infra(cfg)
		}
	}
	for _, o := range opts {
		if o.kind == battleOptUnit {
			o.infra(cfg)
		}
	}

	tb := &TestBattle{Log: NewBattleLog(cfg.verbose)}
	tb.Battle = NewBattle(cfg.cols, cfg.rows, cfg.placements, tb.Log)
	tb.Battle.Subscribe(tb)

	for _, o := range opts {
		if o.kind == battleOptPolicy {
			o.after(tb)
		}
	}
	return tb
}

// UnitDied implements Observer.
func (tb *TestBattle) UnitDied(u *Unit) {
	tb.Deaths = append(tb.Deaths, u)
}

// BattleEnded implements Observer.
func (tb *TestBattle) BattleEnded(victory bool) {
	tb.Ended = true
	tb.Victory = victory
}

// RunTicks advances the battle n ticks.
func (tb *TestBattle) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tb.Battle.Tick()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate returns
// true. Returns the tick at which it was satisfied, or -1.
func (tb *TestBattle) RunUntil(predicate func(*TestBattle) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tb.Battle.Tick()
		if predicate(tb) {
			return tb.Battle.CurrentTick()
		}
	}
	return -1
}

// Click simulates a primary click on a cell.
func (tb *TestBattle) Click(x, y int) {
	tb.Battle.Selector().Click(Cell{X: x, Y: y})
}

// Cancel simulates the cancel event.
func (tb *TestBattle) Cancel() {
	tb.Battle.Selector().Cancel()
}

// UnitAt returns the occupant of a cell, or nil.
func (tb *TestBattle) UnitAt(x, y int) *Unit {
	return tb.Battle.Grid().UnitAt(Cell{X: x, Y: y})
}

// PlayerUnits returns the player-side units in spawn order.
func (tb *TestBattle) PlayerUnits() []*Unit { return tb.Battle.UnitsOf(TeamPlayer) }

// EnemyUnits returns the enemy-side units in spawn order.
func (tb *TestBattle) EnemyUnits() []*Unit { return tb.Battle.UnitsOf(TeamEnemy) }
