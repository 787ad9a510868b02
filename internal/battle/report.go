package battle

import (
	"fmt"
	"strings"
)

// Report formats a human-readable account of the battle so far: phase and
// turn, per-unit fate, damage totals, and the tail of the structured log.
// The windowed game copies it to the clipboard; the headless runner prints
// it after each run.
func Report(b *Battle, logTail int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "--- battle report ---\n")
	fmt.Fprintf(&sb, "tick=%d turn=%d phase=%s\n", b.CurrentTick(), b.Turn(), b.Phase())
	fmt.Fprintf(&sb, "alive: player=%d/%d enemy=%d/%d\n",
		len(b.LivingUnits(TeamPlayer)), len(b.UnitsOf(TeamPlayer)),
		len(b.LivingUnits(TeamEnemy)), len(b.UnitsOf(TeamEnemy)))

	sb.WriteString("\nunits:\n")
	for _, u := range b.Units() {
		fate := fmt.Sprintf("%d/%d hp, %s at %s", u.HP(), u.MaxHP(), u.State(), u.CurrentCell())
		if !u.Alive() {
			fate = "dead"
		}
		fmt.Fprintf(&sb, "  %-4s %-8s %s\n", u.Label(), u.Template(), fate)
	}

	if hits := b.Log().Filter("combat", "hit"); len(hits) > 0 {
		dealt := map[string]int{}
		for _, e := range hits {
			dealt[e.Unit] += int(e.NumVal)
		}
		sb.WriteString("\ndamage dealt:\n")
		for _, u := range b.Units() {
			if d := dealt[u.Label()]; d > 0 {
				fmt.Fprintf(&sb, "  %-4s %d\n", u.Label(), d)
			}
		}
	}

	if logTail > 0 {
		entries := b.Log().Entries()
		from := len(entries) - logTail
		if from < 0 {
			from = 0
		}
		sb.WriteString("\nrecent events:\n")
		for _, e := range entries[from:] {
			sb.WriteString("  ")
			sb.WriteString(e.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
