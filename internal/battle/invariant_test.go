package battle

import "testing"

// checkConsistency asserts the standing relationship between units and
// occupancy: every living unit holds exactly its own cell, dead units hold
// nothing, health stays within bounds.
func checkConsistency(t *testing.T, tb *TestBattle) {
	t.Helper()
	grid := tb.Battle.Grid()

	living := 0
	for _, u := range tb.Battle.Units() {
		if u.HP() < 0 || u.HP() > u.MaxHP() {
			t.Fatalf("tick %d: %s hp %d out of range [0,%d]", tb.Battle.CurrentTick(), u.Label(), u.HP(), u.MaxHP())
		}
		if !u.Alive() {
			if grid.UnitAt(u.CurrentCell()) == u {
				t.Fatalf("tick %d: dead %s still holds %s", tb.Battle.CurrentTick(), u.Label(), u.CurrentCell())
			}
			continue
		}
		living++
		if grid.UnitAt(u.CurrentCell()) != u {
			t.Fatalf("tick %d: %s not at its own cell %s", tb.Battle.CurrentTick(), u.Label(), u.CurrentCell())
		}
	}

	occupied := 0
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			if grid.UnitAt(Cell{X: x, Y: y}) != nil {
				occupied++
			}
		}
	}
	if occupied != living {
		t.Fatalf("tick %d: %d occupied cells for %d living units", tb.Battle.CurrentTick(), occupied, living)
	}
}

func TestOccupancyConsistentEveryTick(t *testing.T) {
	tb := NewTestBattle(
		WithGridSize(10, 6),
		WithPlayerUnit("knight", 1, 2),
		WithPlayerUnit("archer", 0, 3),
		WithEnemyUnit("raider", 8, 2),
		WithEnemyUnit("brute", 9, 3),
		WithPolicy(GreedyPolicy{}),
	)

	deaths := 0
	for i := 0; i < 30000 && !tb.Ended; i++ {
		if tb.Battle.Phase() == PhasePlayer {
			drivePlayer(tb)
		}
		tb.Battle.Tick()
		checkConsistency(t, tb)

		if len(tb.Deaths) < deaths {
			t.Fatal("death list shrank")
		}
		deaths = len(tb.Deaths)
	}
	if !tb.Ended {
		t.Fatalf("battle did not finish; phase=%s", tb.Battle.Phase())
	}
	checkConsistency(t, tb)
}

func TestOnlyActingTeamLeavesIdle(t *testing.T) {
	tb := NewTestBattle(
		WithGridSize(10, 6),
		WithPlayerUnit("knight", 1, 2),
		WithEnemyUnit("raider", 8, 2),
		WithPolicy(GreedyPolicy{}),
	)

	for i := 0; i < 30000 && !tb.Ended; i++ {
		if tb.Battle.Phase() == PhasePlayer {
			drivePlayer(tb)
		}
		tb.Battle.Tick()

		// The off-turn team is frozen: its units sit in Idle or Done, never
		// mid-action.
		var offTurn []*Unit
		switch tb.Battle.Phase() {
		case PhasePlayer:
			offTurn = tb.EnemyUnits()
		case PhaseEnemy:
			offTurn = tb.PlayerUnits()
		}
		for _, u := range offTurn {
			if u.Alive() && (u.State() == UnitMoving || u.State() == UnitAttacking || u.State() == UnitSelected) {
				t.Fatalf("tick %d: off-turn %s is mid-action (%s)", tb.Battle.CurrentTick(), u.Label(), u.State())
			}
		}
	}
	if !tb.Ended {
		t.Fatalf("battle did not finish; phase=%s", tb.Battle.Phase())
	}
}
