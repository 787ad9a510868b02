package battle

import "testing"

func TestWeakestUnitPrefersLowHP(t *testing.T) {
	g := NewGrid(8, 8, 0, 0)
	a := spawn(t, g, nil, nil, 0, TeamPlayer, TemplateKnight, Cell{1, 1})
	b := spawn(t, g, nil, nil, 1, TeamPlayer, TemplateKnight, Cell{2, 1})
	c := spawn(t, g, nil, nil, 2, TeamPlayer, TemplateKnight, Cell{3, 1})
	b.takeDamage(10)

	if got := weakestUnit([]*Unit{a, b, c}); got != b {
		t.Errorf("weakest = %s, want %s", got.Label(), b.Label())
	}

	// Equal HP ties break on spawn id.
	if got := weakestUnit([]*Unit{c, a}); got != a {
		t.Errorf("tie-break picked %s, want %s", got.Label(), a.Label())
	}
}

func TestApproachScore(t *testing.T) {
	g := NewGrid(10, 10, 0, 0)
	p := spawn(t, g, nil, nil, 0, TeamPlayer, TemplateKnight, Cell{5, 5})
	players := []*Unit{p}

	cases := []struct {
		from        Cell
		attackRange int
		want        int
	}{
		{Cell{5, 6}, 1, 0}, // adjacent: already in range
		{Cell{5, 7}, 1, 1},
		{Cell{0, 5}, 1, 4},
		{Cell{0, 5}, 2, 3}, // longer reach shortens the approach
		{Cell{5, 5}, 1, 0},
	}
	for _, c := range cases {
		if got := approachScore(c.from, players, c.attackRange); got != c.want {
			t.Errorf("approachScore(%s, range %d) = %d, want %d", c.from, c.attackRange, got, c.want)
		}
	}
}

func TestBestApproachClosesDistance(t *testing.T) {
	tb := NewTestBattle(
		WithGridSize(10, 10),
		WithPlayerUnit("knight", 1, 5),
		WithEnemyUnit("raider", 8, 5),
	)
	e := tb.UnitAt(8, 5)
	players := tb.Battle.LivingUnits(TeamPlayer)

	before := approachScore(e.CurrentCell(), players, e.AttackRange())
	dest := bestApproach(tb.Battle, e)
	after := approachScore(dest, players, e.AttackRange())
	if after >= before {
		t.Errorf("approach did not close distance: score %d → %d", before, after)
	}

	// Deterministic for a fixed battlefield.
	if again := bestApproach(tb.Battle, e); again != dest {
		t.Errorf("repeated query differs: %s vs %s", dest, again)
	}
}

func endPlayerPhase(t *testing.T, tb *TestBattle) {
	t.Helper()
	for _, u := range tb.PlayerUnits() {
		if !u.Alive() {
			continue
		}
		u.Select()
		u.Stay()
		u.MarkDone()
	}
	tb.RunTicks(1)
	if tb.Battle.Phase() != PhaseEnemy {
		t.Fatalf("player phase did not end: %s", tb.Battle.Phase())
	}
}

func TestGreedyPolicyAttacksAndEndsPhase(t *testing.T) {
	tb := NewTestBattle(
		WithPlayerUnit("knight", 2, 2),
		WithEnemyUnit("raider", 3, 2),
		WithPolicy(GreedyPolicy{}),
	)
	knight := tb.UnitAt(2, 2)
	hpBefore := knight.HP()
	endPlayerPhase(t, tb)

	if tick := tb.RunUntil(func(tb *TestBattle) bool {
		return tb.Battle.Phase() == PhasePlayer
	}, 1000); tick < 0 {
		t.Fatalf("enemy phase never ended; phase=%s", tb.Battle.Phase())
	}

	if tb.Battle.Turn() != 2 {
		t.Errorf("turn = %d, want 2", tb.Battle.Turn())
	}
	raider := tb.EnemyUnits()[0]
	want := hpBefore - DamageDealt(raider.Attack(), knight.Defense())
	if knight.HP() != want {
		t.Errorf("knight hp = %d, want %d (one raider hit)", knight.HP(), want)
	}
	for _, u := range tb.PlayerUnits() {
		if u.State() != UnitIdle {
			t.Errorf("player %s not reset for turn 2: %s", u.Label(), u.State())
		}
	}
}

func TestGreedyPolicyPassesWithNothingInReach(t *testing.T) {
	// A walled-off enemy with no player unit in move+attack reach moves up
	// and passes; the phase still terminates.
	tb := NewTestBattle(
		WithGridSize(14, 3),
		WithPlayerUnit("knight", 0, 0),
		WithEnemyUnit("raider", 13, 2),
		WithPolicy(GreedyPolicy{}),
	)
	knight := tb.UnitAt(0, 0)
	hpBefore := knight.HP()
	endPlayerPhase(t, tb)

	if tick := tb.RunUntil(func(tb *TestBattle) bool {
		return tb.Battle.Phase() == PhasePlayer
	}, 1000); tick < 0 {
		t.Fatalf("enemy phase never ended; phase=%s", tb.Battle.Phase())
	}
	if knight.HP() != hpBefore {
		t.Error("enemy attacked from out of reach")
	}
}

func TestGreedyPolicyHandlesMultipleUnits(t *testing.T) {
	tb := NewTestBattle(
		WithGridSize(10, 10),
		WithPlayerUnit("knight", 1, 4),
		WithEnemyUnit("raider", 8, 2),
		WithEnemyUnit("raider", 8, 6),
		WithEnemyUnit("brute", 9, 4),
		WithPolicy(GreedyPolicy{}),
	)
	endPlayerPhase(t, tb)

	if tick := tb.RunUntil(func(tb *TestBattle) bool {
		return tb.Battle.Phase() == PhasePlayer || tb.Battle.Phase().Terminal()
	}, 2000); tick < 0 {
		t.Fatalf("enemy phase never ended; phase=%s", tb.Battle.Phase())
	}
	// Every living enemy finished its action before the phase handed over.
	for _, u := range tb.EnemyUnits() {
		if u.Alive() && u.State() != UnitIdle && u.State() != UnitDone {
			t.Errorf("enemy %s left mid-action: %s", u.Label(), u.State())
		}
	}
}
