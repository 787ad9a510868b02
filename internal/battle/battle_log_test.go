package battle

import (
	"strings"
	"testing"
)

func seededLog() *BattleLog {
	bl := NewBattleLog(false)
	bl.Add(1, "P0", "player", "input", "select", "(2,2)", 0)
	bl.Add(1, "P0", "player", "state", "change", "idle → selected", 0)
	bl.Add(5, "P0", "player", "input", "move_confirm", "(4,2)", 0)
	bl.Add(40, "P0", "player", "combat", "hit", "P0 → E0", 8)
	bl.Add(40, "E0", "enemy", "unit", "death", "E0", 0)
	bl.Add(41, "--", "--", "phase", "change", "player_phase → enemy_phase", 1)
	return bl
}

func TestLogFilter(t *testing.T) {
	bl := seededLog()

	if got := bl.Filter("input", ""); len(got) != 2 {
		t.Errorf("Filter(input) = %d entries, want 2", len(got))
	}
	if got := bl.Filter("input", "select"); len(got) != 1 {
		t.Errorf("Filter(input, select) = %d entries, want 1", len(got))
	}
	if got := bl.Filter("", "change"); len(got) != 2 {
		t.Errorf("Filter(-, change) = %d entries, want 2", len(got))
	}
	if got := bl.FilterUnit("E0"); len(got) != 1 {
		t.Errorf("FilterUnit(E0) = %d entries, want 1", len(got))
	}
	if got := bl.FilterTickRange(1, 5); len(got) != 3 {
		t.Errorf("FilterTickRange(1,5) = %d entries, want 3", len(got))
	}
}

func TestLogLastOfAndHasEntry(t *testing.T) {
	bl := seededLog()

	e, ok := bl.LastOf("input", "")
	if !ok || e.Key != "move_confirm" {
		t.Errorf("LastOf(input) = %+v, %v", e, ok)
	}
	if _, ok := bl.LastOf("nothing", ""); ok {
		t.Error("LastOf matched a missing category")
	}

	if !bl.HasEntry("combat", "hit", "E0") {
		t.Error("HasEntry missed the hit")
	}
	if bl.HasEntry("combat", "hit", "E9") {
		t.Error("HasEntry matched the wrong value")
	}
	if bl.CountCategory("state", "change") != 1 {
		t.Error("CountCategory wrong")
	}
}

func TestLogVerboseGate(t *testing.T) {
	quiet := NewBattleLog(false)
	quiet.AddVerbose(1, "P0", "player", "state", "pos", "(2,2)", 0)
	if len(quiet.Entries()) != 0 {
		t.Error("verbose entry recorded by a quiet log")
	}

	loud := NewBattleLog(true)
	loud.AddVerbose(1, "P0", "player", "state", "pos", "(2,2)", 0)
	if len(loud.Entries()) != 1 {
		t.Error("verbose entry dropped by a verbose log")
	}
}

func TestLogFormat(t *testing.T) {
	bl := seededLog()
	out := bl.Format()
	if !strings.Contains(out, "[T=040]") || !strings.Contains(out, "P0 → E0") {
		t.Errorf("Format output missing expected lines:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n != len(bl.Entries()) {
		t.Errorf("Format produced %d lines for %d entries", n, len(bl.Entries()))
	}

	ranged := bl.FormatRange(40, 41)
	if strings.Contains(ranged, "select") {
		t.Error("FormatRange leaked entries outside the range")
	}
}

func TestReportSummarisesBattle(t *testing.T) {
	dummy := UnitTemplate{Name: "dummy", MaxHP: 4, Attack: 1, Defense: 0, MoveRange: 1, AttackRange: 1}
	tb := NewTestBattle(
		WithPlayerUnit("knight", 2, 2),
		WithPlacement(Placement{Template: dummy, Team: TeamEnemy, Cell: Cell{X: 3, Y: 2}}),
	)
	knight := tb.UnitAt(2, 2)
	tb.Click(2, 2)
	tb.Click(2, 2)
	tb.RunTicks(1)
	tb.Click(3, 2)
	tb.RunUntil(func(tb *TestBattle) bool { return tb.Ended }, 200)

	out := Report(tb.Battle, 10)
	for _, want := range []string{
		"phase=victory",
		"alive: player=1/1 enemy=0/1",
		"dead",
		"damage dealt:",
		knight.Label(),
		"recent events:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
