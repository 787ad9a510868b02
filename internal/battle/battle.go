package battle

// Battle wires the grid, units, turn controller and action selector together
// and owns the tick loop. All collaborators are passed explicitly; there is
// no global lookup anywhere in the package.
type Battle struct {
	grid     *Grid
	units    []*Unit
	player   []*Unit
	enemy    []*Unit
	turn     *TurnController
	selector *ActionSelector
	log      *BattleLog
	events   *eventQueue

	observers []Observer
	policy    Policy

	tick int
}

// NewBattle builds an engagement from a placement list and starts the first
// player turn. Placements on unusable cells (out of bounds, already
// occupied) are skipped. A nil log gets a quiet default.
func NewBattle(cols, rows int, placements []Placement, log *BattleLog) *Battle {
	if log == nil {
		log = NewBattleLog(false)
	}
	b := &Battle{
		log:    log,
		events: &eventQueue{},
	}
	b.grid = NewGrid(cols, rows, 0, 0)
	b.grid.log = log
	b.grid.tick = &b.tick
	b.turn = NewTurnController(log, b.events, &b.tick)
	b.selector = NewActionSelector(b.grid, b.turn, log, &b.tick)

	for i, p := range placements {
		u := NewUnit(i, p.Team, p.Template, p.Bonus, p.Cell, b.grid, log, b.events, &b.tick)
		if u == nil {
			continue
		}
		b.units = append(b.units, u)
		if p.Team == TeamPlayer {
			b.player = append(b.player, u)
		} else {
			b.enemy = append(b.enemy, u)
		}
	}

	b.turn.Begin(b.player)
	return b
}

// Subscribe registers an observer for death and battle-end notifications.
func (b *Battle) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// SetPolicy installs the enemy-side decision collaborator. It is driven once
// per tick while the enemy phase is active.
func (b *Battle) SetPolicy(p Policy) { b.policy = p }

// Tick advances the battle one step: in-flight unit actions first, then the
// selector's bookkeeping, then phase evaluation, then the enemy policy, and
// finally the notification queue, so observers always see settled state.
func (b *Battle) Tick() {
	if b.turn.Phase().Terminal() {
		b.events.drain(b.observers)
		return
	}
	b.tick++

	for _, u := range b.units {
		u.Update()
		if u.Alive() {
			b.log.AddVerbose(b.tick, u.label, teamLabel(u.team), "state", "pos", u.cell.String(), float64(u.hp))
		}
	}
	b.selector.Update()
	b.turn.Evaluate(b.player, b.enemy)

	if b.turn.Phase() == PhaseEnemy && b.policy != nil {
		b.policy.Command(b)
		b.turn.Evaluate(b.player, b.enemy)
	}

	b.events.drain(b.observers)
}

// --- Read-only query surface (HUD, inspector, presentation) ---

// Phase returns the current battle phase.
func (b *Battle) Phase() Phase { return b.turn.Phase() }

// Turn returns the current turn number.
func (b *Battle) Turn() int { return b.turn.Turn() }

// CurrentTick returns the tick counter.
func (b *Battle) CurrentTick() int { return b.tick }

// Grid exposes the spatial query surface (WorldToCell, CellToWorld, bounds).
func (b *Battle) Grid() *Grid { return b.grid }

// Selector exposes the player input session.
func (b *Battle) Selector() *ActionSelector { return b.selector }

// Log returns the structured battle log.
func (b *Battle) Log() *BattleLog { return b.log }

// Units returns every spawned unit, dead or alive.
func (b *Battle) Units() []*Unit { return b.units }

// UnitsOf returns the units of one team, dead or alive.
func (b *Battle) UnitsOf(team Team) []*Unit {
	if team == TeamPlayer {
		return b.player
	}
	return b.enemy
}

// LivingUnits returns the living units of one team.
func (b *Battle) LivingUnits(team Team) []*Unit {
	var out []*Unit
	for _, u := range b.UnitsOf(team) {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// --- Command entry points (player input and enemy policy) ---
//
// The selector uses unit methods through its click protocol; the enemy
// collaborator uses these wrappers. Every command is gated on the phase
// matching the unit's team, so a stuck or misbehaving policy can never move
// the other side's pieces.

func (b *Battle) commandable(u *Unit) bool {
	if u == nil || !u.Alive() {
		return false
	}
	team, ok := b.turn.Phase().ActingTeam()
	return ok && team == u.Team()
}

// SelectUnit begins a unit's action: Idle → Selected.
func (b *Battle) SelectUnit(u *Unit) {
	if !b.commandable(u) {
		return
	}
	u.Select()
}

// CommandMove moves a selected unit to a destination inside its reachable
// set. A destination equal to the unit's cell is the "stay" command.
func (b *Battle) CommandMove(u *Unit, dest Cell) {
	if !b.commandable(u) || u.State() != UnitSelected {
		return
	}
	if dest == u.CurrentCell() {
		u.Stay()
		return
	}
	reachable := b.grid.ReachableCells(u.CurrentCell(), u.MoveRange())
	path := ReconstructPath(reachable, u.CurrentCell(), dest)
	u.StartMove(path)
}

// CommandAttack locks an attack from a unit awaiting a target.
func (b *Battle) CommandAttack(u, target *Unit) {
	if !b.commandable(u) {
		return
	}
	if target == nil || Chebyshev(u.CurrentCell(), target.CurrentCell()) > u.AttackRange() {
		return
	}
	u.StartAttack(target)
}

// CommandDone ends a unit's turn.
func (b *Battle) CommandDone(u *Unit) {
	if !b.commandable(u) {
		return
	}
	u.MarkDone()
}

// EndEnemyPhase signals that the enemy collaborator has issued every command
// for the turn.
func (b *Battle) EndEnemyPhase() {
	b.turn.EndEnemyPhase(b.player, b.enemy)
}
