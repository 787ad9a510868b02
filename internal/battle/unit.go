package battle

import (
	"fmt"
	"math"
)

const (
	// moveSpeed is the cosmetic traversal speed in world pixels per tick.
	// Gameplay only cares about waypoint ordering and the completion tick.
	moveSpeed = 6.0
	// arrivalEpsilon is the distance at which a waypoint counts as reached.
	arrivalEpsilon = 0.5
	// attackResolveTicks is the fixed delay between committing an attack and
	// applying its damage.
	attackResolveTicks = 30
)

// Team distinguishes the player's force from the opposing force.
type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (t Team) String() string {
	if t == TeamPlayer {
		return "player"
	}
	return "enemy"
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

// teamLabel returns the short log string for a team.
func teamLabel(t Team) string {
	if t == TeamPlayer {
		return "player"
	}
	return "enemy"
}

// UnitState is the per-unit action state. A unit leaves Idle only while its
// team's phase is active, and returns to Idle from Done at the start of its
// team's next turn.
type UnitState int

const (
	UnitIdle UnitState = iota
	UnitSelected
	UnitMoving
	UnitWaitingForAttackTarget
	UnitAttacking
	UnitDone
)

func (s UnitState) String() string {
	switch s {
	case UnitIdle:
		return "idle"
	case UnitSelected:
		return "selected"
	case UnitMoving:
		return "moving"
	case UnitWaitingForAttackTarget:
		return "waiting_for_target"
	case UnitAttacking:
		return "attacking"
	case UnitDone:
		return "done"
	default:
		return "unknown"
	}
}

// Unit is one deployed combatant. Identity and stats are fixed at spawn;
// health, cell, state and the per-turn flags mutate during the battle.
type Unit struct {
	id       int
	label    string // e.g. "P0", "E2"
	team     Team
	template string

	maxHP       int
	hp          int
	attack      int
	defense     int
	moveRange   int
	attackRange int

	cell        Cell
	state       UnitState
	hasMoved    bool
	hasAttacked bool

	// Cosmetic traversal state. The logical cell is committed when the move
	// starts; worldX/worldY trail behind it waypoint by waypoint.
	path           []Cell
	pathIndex      int
	worldX, worldY float64

	// Attack resolution state.
	attackTarget *Unit
	attackTimer  int

	// Collaborators, injected at spawn.
	grid   *Grid
	log    *BattleLog
	events *eventQueue
	tick   *int
}

// NewUnit spawns a unit from a template plus progression bonus and places it
// on the grid. Returns nil if the spawn cell is unusable (out of bounds or
// occupied); the placement is skipped, matching the no-op failure policy.
func NewUnit(id int, team Team, tmpl UnitTemplate, bonus StatBonus, cell Cell, grid *Grid, log *BattleLog, events *eventQueue, tick *int) *Unit {
	u := &Unit{
		id:          id,
		label:       unitLabel(team, id),
		team:        team,
		template:    tmpl.Name,
		maxHP:       tmpl.MaxHP + bonus.MaxHP,
		attack:      tmpl.Attack + bonus.Attack,
		defense:     tmpl.Defense + bonus.Defense,
		moveRange:   tmpl.MoveRange,
		attackRange: tmpl.AttackRange,
		cell:        cell,
		state:       UnitIdle,
		grid:        grid,
		log:         log,
		events:      events,
		tick:        tick,
	}
	u.hp = u.maxHP
	grid.PlaceUnit(cell, u)
	if grid.UnitAt(cell) != u {
		return nil
	}
	u.worldX, u.worldY = grid.CellToWorld(cell)
	return u
}

func unitLabel(team Team, id int) string {
	prefix := "P"
	if team == TeamEnemy {
		prefix = "E"
	}
	return fmt.Sprintf("%s%d", prefix, id)
}

// Accessors consumed by the HUD, selector and tests.

func (u *Unit) ID() int           { return u.id }
func (u *Unit) Label() string     { return u.label }
func (u *Unit) Team() Team        { return u.team }
func (u *Unit) Template() string  { return u.template }
func (u *Unit) MaxHP() int        { return u.maxHP }
func (u *Unit) HP() int           { return u.hp }
func (u *Unit) Attack() int       { return u.attack }
func (u *Unit) Defense() int      { return u.defense }
func (u *Unit) MoveRange() int    { return u.moveRange }
func (u *Unit) AttackRange() int  { return u.attackRange }
func (u *Unit) CurrentCell() Cell { return u.cell }
func (u *Unit) State() UnitState  { return u.state }
func (u *Unit) HasMoved() bool    { return u.hasMoved }
func (u *Unit) HasAttacked() bool { return u.hasAttacked }

func (u *Unit) WorldPos() (float64, float64) { return u.worldX, u.worldY }

// Alive reports whether the unit still participates in the battle.
// A dead unit holds no grid cell and never acts again.
func (u *Unit) Alive() bool { return u.hp > 0 }

// CanAct reports whether the unit may still be commanded this turn.
func (u *Unit) CanAct() bool {
	return u.Alive() && u.state != UnitMoving && u.state != UnitAttacking && u.state != UnitDone
}

// Select transitions Idle → Selected. No-op from any other state.
func (u *Unit) Select() {
	if !u.Alive() || u.state != UnitIdle {
		return
	}
	u.setState(UnitSelected)
}

// Deselect reverses a pre-commitment selection: Selected → Idle.
// No-op once the unit has committed to a move or attack.
func (u *Unit) Deselect() {
	if u.state != UnitSelected {
		return
	}
	u.setState(UnitIdle)
}

// StartMove commits the unit to traverse path (origin..dest inclusive).
// Grid occupancy and the unit's cell jump to the destination immediately;
// only the drawn position interpolates. No-op unless the unit is Selected
// and the path is non-empty.
func (u *Unit) StartMove(path []Cell) {
	if !u.Alive() || u.state != UnitSelected || len(path) == 0 {
		return
	}
	dest := path[len(path)-1]
	if dest != u.cell {
		from := u.cell
		u.grid.MoveUnit(from, dest, u)
		if u.grid.UnitAt(dest) != u {
			return // grid rejected the move; nothing committed
		}
		u.cell = dest
	}
	u.hasMoved = true
	u.path = path
	u.pathIndex = 0
	u.setState(UnitMoving)
}

// Stay commits the unit to attack from its current cell: Selected →
// WaitingForAttackTarget without moving.
func (u *Unit) Stay() {
	if !u.Alive() || u.state != UnitSelected {
		return
	}
	u.hasMoved = true
	u.setState(UnitWaitingForAttackTarget)
}

// StartAttack locks a target and begins the resolution timer. No-op unless
// the unit is waiting for a target and the target is a living enemy.
func (u *Unit) StartAttack(target *Unit) {
	if !u.Alive() || u.state != UnitWaitingForAttackTarget {
		return
	}
	if target == nil || target.team == u.team || !target.Alive() {
		return
	}
	u.attackTarget = target
	u.attackTimer = attackResolveTicks
	u.hasAttacked = true
	u.setState(UnitAttacking)
}

// MarkDone ends the unit's turn without attacking. In-flight moves and
// attacks always run to completion, so those states are not interruptible.
func (u *Unit) MarkDone() {
	if !u.Alive() || u.state == UnitDone || u.state == UnitMoving || u.state == UnitAttacking {
		return
	}
	u.setState(UnitDone)
}

// ResetForNewTurn returns a surviving unit to Idle and clears its per-turn
// flags. Called by the turn controller on the newly active team only.
func (u *Unit) ResetForNewTurn() {
	if !u.Alive() {
		return
	}
	u.hasMoved = false
	u.hasAttacked = false
	u.setState(UnitIdle)
}

// Update advances any in-flight action by one tick. Moving and Attacking
// always run to completion once started.
func (u *Unit) Update() {
	if !u.Alive() {
		return
	}
	switch u.state {
	case UnitMoving:
		u.advanceAlongPath()
	case UnitAttacking:
		u.advanceAttack()
	}
}

// advanceAlongPath moves the drawn position toward the next waypoint at a
// fixed speed. Reaching the final waypoint completes the move.
func (u *Unit) advanceAlongPath() {
	remaining := moveSpeed
	for remaining > 0 && u.pathIndex < len(u.path) {
		wx, wy := u.grid.CellToWorld(u.path[u.pathIndex])
		dx := wx - u.worldX
		dy := wy - u.worldY
		dist := math.Hypot(dx, dy)
		if dist <= remaining+arrivalEpsilon {
			u.worldX = wx
			u.worldY = wy
			remaining -= dist
			u.pathIndex++
			continue
		}
		u.worldX += dx / dist * remaining
		u.worldY += dy / dist * remaining
		remaining = 0
	}
	if u.pathIndex >= len(u.path) {
		u.path = nil
		u.pathIndex = 0
		u.setState(UnitWaitingForAttackTarget)
	}
}

// advanceAttack ticks the resolution timer and applies damage exactly once
// when it elapses. A target that died in the meantime makes the attack a
// no-op; the attacker ends its turn either way.
func (u *Unit) advanceAttack() {
	if u.attackTimer > 0 {
		u.attackTimer--
	}
	if u.attackTimer > 0 {
		return
	}
	target := u.attackTarget
	u.attackTarget = nil
	if target != nil && target.Alive() {
		dmg := DamageDealt(u.attack, target.defense)
		u.logEvent("combat", "hit", u.label+" → "+target.label, float64(dmg))
		target.takeDamage(dmg)
	}
	u.setState(UnitDone)
}

// DamageDealt is the battle damage formula: at least 1, otherwise the
// difference between attack and defense.
func DamageDealt(attack, defense int) int {
	dmg := attack - defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// takeDamage reduces health, clamping at zero. Reaching zero kills the unit:
// its grid cell is freed at once and a death notification is queued.
func (u *Unit) takeDamage(dmg int) {
	if !u.Alive() || dmg <= 0 {
		return
	}
	u.hp -= dmg
	if u.hp > 0 {
		return
	}
	u.hp = 0
	u.grid.RemoveUnit(u.cell)
	u.logEvent("unit", "death", u.label, 0)
	if u.events != nil {
		u.events.queueDeath(u)
	}
}

func (u *Unit) setState(s UnitState) {
	if u.state == s {
		return
	}
	u.logEvent("state", "change", u.state.String()+" → "+s.String(), 0)
	u.state = s
}

func (u *Unit) logEvent(category, key, value string, numVal float64) {
	if u.log == nil {
		return
	}
	tick := 0
	if u.tick != nil {
		tick = *u.tick
	}
	u.log.Add(tick, u.label, teamLabel(u.team), category, key, value, numVal)
}
