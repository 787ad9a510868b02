package battle

// ActionSelector translates cell clicks and cancel events into commands
// against a single selected unit. It consults the grid for legal
// destinations and targets, and the unit's own state for what a click means.
// All input is gated on the player phase; everything else is a no-op.
type ActionSelector struct {
	grid *Grid
	turn *TurnController
	log  *BattleLog
	tick *int

	selected *Unit

	// Cached query results, recomputed whenever selection or position
	// changes. reachable keys legal destinations; origin is where the
	// reachable map was computed from.
	origin     Cell
	reachable  map[Cell]Cell
	attackSet  map[Cell]bool
	attackable []*Unit

	// True while the cached attack data is stale: set on every entry into
	// WaitingForAttackTarget, cleared by the per-tick refresh.
	targetsStale bool
}

// NewActionSelector wires the selector to its collaborators.
func NewActionSelector(grid *Grid, turn *TurnController, log *BattleLog, tick *int) *ActionSelector {
	return &ActionSelector{grid: grid, turn: turn, log: log, tick: tick}
}

// SelectedUnit returns the unit under player control, or nil.
func (as *ActionSelector) SelectedUnit() *Unit { return as.selected }

// ReachableCells returns the cached reachable map for highlight rendering.
func (as *ActionSelector) ReachableCells() map[Cell]Cell { return as.reachable }

// AttackCells returns the cached attack-range set for highlight rendering.
func (as *ActionSelector) AttackCells() map[Cell]bool { return as.attackSet }

// AttackableTargets returns the cached list of units the selection may attack.
func (as *ActionSelector) AttackableTargets() []*Unit { return as.attackable }

// PathTo reconstructs the cached path to a reachable cell, for previewing.
func (as *ActionSelector) PathTo(dest Cell) []Cell {
	if as.reachable == nil {
		return nil
	}
	return ReconstructPath(as.reachable, as.origin, dest)
}

// Click handles a primary click on cell c.
func (as *ActionSelector) Click(c Cell) {
	if as.turn.Phase() != PhasePlayer || !as.grid.InBounds(c) {
		return
	}

	if as.selected == nil {
		as.trySelect(as.grid.UnitAt(c))
		return
	}

	switch as.selected.State() {
	case UnitSelected:
		as.clickWhileSelected(c)
	case UnitWaitingForAttackTarget:
		as.clickWhileTargeting(c)
	default:
		// Moving/Attacking run to completion; clicks are ignored.
	}
}

// clickWhileSelected resolves a click made before the unit commits to a move.
func (as *ActionSelector) clickWhileSelected(c Cell) {
	u := as.selected

	// Clicking the unit's own cell: fight from here.
	if c == u.CurrentCell() {
		u.Stay()
		as.markTargetsStale()
		return
	}

	// Clicking another commandable friendly unit: switch selection.
	if other := as.grid.UnitAt(c); other != nil && other.Team() == TeamPlayer && other != u {
		if other.State() == UnitIdle && other.CanAct() {
			u.Deselect()
			as.clearSelection()
			as.trySelect(other)
		}
		return
	}

	// Clicking a reachable cell: commit the move.
	if _, ok := as.reachable[c]; ok {
		path := ReconstructPath(as.reachable, as.origin, c)
		u.StartMove(path)
		if u.State() == UnitMoving {
			as.logInput("move_confirm", c)
			as.reachable = nil
			as.markTargetsStale()
		}
		return
	}
	// Anything else is ignored.
}

// clickWhileTargeting resolves a click made while choosing an attack target.
func (as *ActionSelector) clickWhileTargeting(c Cell) {
	if !as.attackSet[c] {
		return
	}
	target := as.grid.UnitAt(c)
	if target == nil || !target.Alive() {
		return
	}
	for _, t := range as.attackable {
		if t == target {
			as.selected.StartAttack(target)
			as.logInput("attack_confirm", c)
			return
		}
	}
}

// Cancel handles the cancel event. Before any commitment it fully reverses
// the selection; after the unit has moved (or chosen to stay) it skips the
// attack and ends the unit's turn.
func (as *ActionSelector) Cancel() {
	if as.turn.Phase() != PhasePlayer || as.selected == nil {
		return
	}
	switch as.selected.State() {
	case UnitSelected:
		as.selected.Deselect()
		as.clearSelection()
	case UnitWaitingForAttackTarget:
		as.selected.MarkDone()
		as.logInput("skip_attack", as.selected.CurrentCell())
		as.clearSelection()
	default:
		// Mid-flight actions are never cancelled.
	}
}

// Update runs the selector's per-tick bookkeeping: refreshing stale target
// caches when a move completes, auto-finishing units with nothing to attack,
// and releasing the selection once the unit is done.
func (as *ActionSelector) Update() {
	if as.selected == nil {
		return
	}
	if as.turn.Phase() != PhasePlayer || !as.selected.Alive() {
		as.selected.Deselect()
		as.clearSelection()
		return
	}

	if as.selected.State() == UnitWaitingForAttackTarget && as.targetsStale {
		as.refreshTargets()
		if len(as.attackable) == 0 {
			as.selected.MarkDone()
			as.clearSelection()
			return
		}
	}

	if as.selected.State() == UnitDone {
		as.clearSelection()
	}
}

// trySelect selects a commandable player unit and caches its reachable set.
func (as *ActionSelector) trySelect(u *Unit) {
	if u == nil || u.Team() != TeamPlayer || !u.CanAct() || u.State() != UnitIdle {
		return
	}
	u.Select()
	if u.State() != UnitSelected {
		return
	}
	as.selected = u
	as.origin = u.CurrentCell()
	as.reachable = as.grid.ReachableCells(as.origin, u.MoveRange())
	as.attackSet = nil
	as.attackable = nil
	as.targetsStale = false
	as.logInput("select", as.origin)
}

// refreshTargets recomputes the attack caches from the unit's current cell.
func (as *ActionSelector) refreshTargets() {
	u := as.selected
	as.attackSet = make(map[Cell]bool)
	for _, c := range as.grid.AttackRangeCells(u.CurrentCell(), u.AttackRange()) {
		as.attackSet[c] = true
	}
	as.attackable = as.grid.AttackableEnemies(u.CurrentCell(), u.AttackRange(), u.Team())
	as.targetsStale = false
}

func (as *ActionSelector) markTargetsStale() {
	as.targetsStale = true
}

func (as *ActionSelector) clearSelection() {
	as.selected = nil
	as.reachable = nil
	as.attackSet = nil
	as.attackable = nil
	as.targetsStale = false
}

func (as *ActionSelector) logInput(key string, c Cell) {
	if as.log == nil {
		return
	}
	tick := 0
	if as.tick != nil {
		tick = *as.tick
	}
	label := "--"
	if as.selected != nil {
		label = as.selected.Label()
	}
	as.log.Add(tick, label, "player", "input", key, c.String(), 0)
}
