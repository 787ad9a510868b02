package battle

import "testing"

func TestHarnessDefaults(t *testing.T) {
	tb := NewTestBattle(
		WithPlayerUnit("knight", 0, 0),
		WithEnemyUnit("raider", 7, 7),
	)
	g := tb.Battle.Grid()
	if g.Cols() != 8 || g.Rows() != 8 {
		t.Errorf("default grid = %dx%d, want 8x8", g.Cols(), g.Rows())
	}
	if len(tb.PlayerUnits()) != 1 || len(tb.EnemyUnits()) != 1 {
		t.Errorf("units = %d/%d", len(tb.PlayerUnits()), len(tb.EnemyUnits()))
	}
}

func TestHarnessSkipsUnusablePlacements(t *testing.T) {
	tb := NewTestBattle(
		WithGridSize(4, 4),
		WithPlayerUnit("knight", 1, 1),
		WithPlayerUnit("archer", 1, 1), // occupied
		WithEnemyUnit("raider", 9, 9),  // out of bounds
		WithEnemyUnit("raider", 3, 3),
	)
	if n := len(tb.PlayerUnits()); n != 1 {
		t.Errorf("player units = %d, want 1 (conflicting placement skipped)", n)
	}
	if n := len(tb.EnemyUnits()); n != 1 {
		t.Errorf("enemy units = %d, want 1 (out-of-bounds placement skipped)", n)
	}
	if !tb.Log.HasEntry("grid", "", "") {
		t.Error("skipped placements not logged")
	}
}

func TestRunUntilTimesOut(t *testing.T) {
	tb := NewTestBattle(
		WithPlayerUnit("knight", 0, 0),
		WithEnemyUnit("raider", 7, 7),
	)
	if got := tb.RunUntil(func(tb *TestBattle) bool { return false }, 10); got != -1 {
		t.Errorf("RunUntil = %d, want -1 on timeout", got)
	}
	if tb.Battle.CurrentTick() != 10 {
		t.Errorf("tick = %d, want 10", tb.Battle.CurrentTick())
	}
}

func TestVerboseHarnessRecordsPositions(t *testing.T) {
	tb := NewTestBattle(
		WithVerbose(true),
		WithPlayerUnit("knight", 0, 0),
		WithEnemyUnit("raider", 7, 7),
	)
	tb.RunTicks(3)
	if tb.Log.CountCategory("state", "pos") == 0 {
		t.Error("verbose run recorded no per-tick position entries")
	}
}

func TestTemplateByNameFallsBack(t *testing.T) {
	if got := TemplateByName("archer"); got.Name != "archer" {
		t.Errorf("TemplateByName(archer) = %s", got.Name)
	}
	if got := TemplateByName("no-such-unit"); got.Name != TemplateKnight.Name {
		t.Errorf("unknown template fell back to %s, want %s", got.Name, TemplateKnight.Name)
	}
}
