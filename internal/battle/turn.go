package battle

// Phase is the global turn state of the engagement. Exactly one value holds
// at a time; Victory and Defeat are terminal.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlayer
	PhaseEnemy
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlayer:
		return "player_phase"
	case PhaseEnemy:
		return "enemy_phase"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further phase transitions or unit actions are
// processed.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// ActingTeam returns the team allowed to issue commands in this phase.
// Only meaningful for the two acting phases.
func (p Phase) ActingTeam() (Team, bool) {
	switch p {
	case PhasePlayer:
		return TeamPlayer, true
	case PhaseEnemy:
		return TeamEnemy, true
	default:
		return TeamPlayer, false
	}
}

// TurnController owns the phase state machine and the win/loss evaluation.
// Unit completion is driven by asynchronous per-unit action flows, so phase
// completion is re-checked every tick rather than on a single event.
type TurnController struct {
	phase Phase
	turn  int // 1-based turn counter, advances when the player phase returns

	log    *BattleLog
	events *eventQueue
	tick   *int
}

// NewTurnController starts in Setup.
func NewTurnController(log *BattleLog, events *eventQueue, tick *int) *TurnController {
	return &TurnController{phase: PhaseSetup, log: log, events: events, tick: tick}
}

// Phase returns the current battle phase.
func (tc *TurnController) Phase() Phase { return tc.phase }

// Turn returns the current turn number (0 during Setup).
func (tc *TurnController) Turn() int { return tc.turn }

// Begin leaves Setup once all placements are on the grid. The player acts
// first; their units are reset for the opening turn.
func (tc *TurnController) Begin(player []*Unit) {
	if tc.phase != PhaseSetup {
		return
	}
	tc.turn = 1
	tc.setPhase(PhasePlayer)
	for _, u := range player {
		u.ResetForNewTurn()
	}
}

// Evaluate runs the continuous per-tick checks: team elimination first, then
// player-phase completion. Elimination wins the instant a team has no living
// units, regardless of whose phase it is.
func (tc *TurnController) Evaluate(player, enemy []*Unit) {
	if tc.phase.Terminal() || tc.phase == PhaseSetup {
		return
	}

	if countLiving(enemy) == 0 {
		tc.setPhase(PhaseVictory)
		tc.events.queueBattleEnd(true)
		return
	}
	if countLiving(player) == 0 {
		tc.setPhase(PhaseDefeat)
		tc.events.queueBattleEnd(false)
		return
	}

	if tc.phase == PhasePlayer && allDone(player) {
		tc.setPhase(PhaseEnemy)
		for _, u := range enemy {
			u.ResetForNewTurn()
		}
	}
}

// EndEnemyPhase is the entry point for the enemy-policy collaborator: it
// signals that every enemy command for the turn has been issued. Ignored
// outside the enemy phase or while an enemy unit is still mid-action.
func (tc *TurnController) EndEnemyPhase(player, enemy []*Unit) {
	if tc.phase != PhaseEnemy {
		return
	}
	for _, u := range enemy {
		if u.Alive() && (u.State() == UnitMoving || u.State() == UnitAttacking) {
			return
		}
	}
	tc.turn++
	tc.setPhase(PhasePlayer)
	for _, u := range player {
		u.ResetForNewTurn()
	}
}

func (tc *TurnController) setPhase(p Phase) {
	if tc.phase == p {
		return
	}
	if tc.log != nil {
		tick := 0
		if tc.tick != nil {
			tick = *tc.tick
		}
		tc.log.Add(tick, "--", "--", "phase", "change", tc.phase.String()+" → "+p.String(), float64(tc.turn))
	}
	tc.phase = p
}

func countLiving(units []*Unit) int {
	n := 0
	for _, u := range units {
		if u.Alive() {
			n++
		}
	}
	return n
}

// allDone reports whether every living unit in the list has finished its
// turn. An empty or fully dead list does not count as done; elimination is
// handled separately.
func allDone(units []*Unit) bool {
	living := 0
	for _, u := range units {
		if !u.Alive() {
			continue
		}
		living++
		if u.State() != UnitDone {
			return false
		}
	}
	return living > 0
}
