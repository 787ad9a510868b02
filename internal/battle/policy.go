package battle

// Policy is the enemy-side decision collaborator. It is driven once per tick
// during the enemy phase and issues commands through the same narrow entry
// points as the player-facing selector: select, move, attack, done, end-turn.
type Policy interface {
	Command(b *Battle)
}

// GreedyPolicy is the baseline enemy brain: one unit at a time, attack the
// weakest player unit in range, otherwise close the distance toward the
// nearest one. Deterministic for a fixed battlefield: every choice
// tie-breaks on cell order or unit id.
type GreedyPolicy struct{}

// Command issues at most one command per tick, waiting out any enemy unit
// that is mid-move or mid-attack.
func (GreedyPolicy) Command(b *Battle) {
	if b.Phase() != PhaseEnemy {
		return
	}
	enemies := b.UnitsOf(TeamEnemy)

	for _, u := range enemies {
		if u.Alive() && (u.State() == UnitMoving || u.State() == UnitAttacking) {
			return
		}
	}

	// A unit that finished moving picks its target (or passes).
	for _, u := range enemies {
		if !u.Alive() || u.State() != UnitWaitingForAttackTarget {
			continue
		}
		targets := b.Grid().AttackableEnemies(u.CurrentCell(), u.AttackRange(), TeamEnemy)
		if len(targets) == 0 {
			b.CommandDone(u)
			return
		}
		b.CommandAttack(u, weakestUnit(targets))
		return
	}

	// Start (or resume) the next waiting unit's action.
	for _, u := range enemies {
		if !u.Alive() || (u.State() != UnitIdle && u.State() != UnitSelected) {
			continue
		}
		if u.State() == UnitIdle {
			b.SelectUnit(u)
		}
		b.CommandMove(u, bestApproach(b, u))
		return
	}

	b.EndEnemyPhase()
}

// weakestUnit prefers the lowest current HP, tie-broken by spawn id.
func weakestUnit(units []*Unit) *Unit {
	best := units[0]
	for _, u := range units[1:] {
		if u.HP() < best.HP() || (u.HP() == best.HP() && u.ID() < best.ID()) {
			best = u
		}
	}
	return best
}

// bestApproach picks the reachable cell that brings u closest to striking
// range of the nearest living player unit. Staying put is a legal answer;
// the origin is always in the reachable set.
func bestApproach(b *Battle, u *Unit) Cell {
	players := b.LivingUnits(TeamPlayer)
	reachable := b.Grid().ReachableCells(u.CurrentCell(), u.MoveRange())

	best := u.CurrentCell()
	bestScore := approachScore(best, players, u.AttackRange())
	for c := range reachable {
		score := approachScore(c, players, u.AttackRange())
		if score < bestScore || (score == bestScore && lessCell(c, best)) {
			best = c
			bestScore = score
		}
	}
	return best
}

// approachScore is the number of cells still separating c from attack range
// of the closest player unit. Zero means a target is already reachable.
func approachScore(c Cell, players []*Unit, attackRange int) int {
	const far = 1 << 20
	best := far
	for _, p := range players {
		d := Chebyshev(c, p.CurrentCell()) - attackRange
		if d < 0 {
			d = 0
		}
		if d < best {
			best = d
		}
	}
	return best
}

// lessCell is the deterministic tie-break order: row-major.
func lessCell(a, b Cell) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
