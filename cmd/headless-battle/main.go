package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/arvenhall/gridclash/internal/battle"
)

// scenario is a named headless battle setup.
type scenario struct {
	name string
	opts []battle.BattleOption
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "skirmish",
			opts: []battle.BattleOption{
				battle.WithGridSize(12, 8),
				battle.WithPlayerUnit("knight", 1, 2),
				battle.WithPlayerUnit("archer", 0, 3),
				battle.WithPlayerUnit("pikeman", 1, 4),
				battle.WithEnemyUnit("raider", 10, 2),
				battle.WithEnemyUnit("raider", 11, 3),
				battle.WithEnemyUnit("brute", 10, 5),
			},
		},
		{
			name: "outnumbered",
			opts: []battle.BattleOption{
				battle.WithGridSize(10, 10),
				battle.WithPlayerUnit("knight", 1, 4),
				battle.WithPlayerUnit("archer", 0, 5),
				battle.WithEnemyUnit("raider", 8, 2),
				battle.WithEnemyUnit("raider", 8, 5),
				battle.WithEnemyUnit("raider", 8, 8),
				battle.WithEnemyUnit("brute", 9, 4),
			},
		},
		{
			name: "corridor",
			opts: []battle.BattleOption{
				battle.WithGridSize(14, 3),
				battle.WithPlayerUnit("brute", 0, 1),
				battle.WithPlayerUnit("archer", 1, 0),
				battle.WithEnemyUnit("pikeman", 12, 1),
				battle.WithEnemyUnit("pikeman", 13, 1),
			},
		},
	}
}

type runResult struct {
	name     string
	ticks    int
	phase    battle.Phase
	deaths   int
	pAlive   int
	eAlive   int
	finished bool
}

func main() {
	var which string
	var maxTicks int
	var verbose bool
	flag.StringVar(&which, "scenario", "all", "scenario name, or 'all'")
	flag.IntVar(&maxTicks, "max-ticks", 20000, "tick budget per battle")
	flag.BoolVar(&verbose, "report", false, "print the full battle report per run")
	flag.Parse()

	var selected []scenario
	for _, s := range scenarios() {
		if which == "all" || which == s.name {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		names := make([]string, 0, len(scenarios()))
		for _, s := range scenarios() {
			names = append(names, s.name)
		}
		sort.Strings(names)
		fmt.Printf("error: unknown scenario %q (known: %v, or 'all')\n", which, names)
		return
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("scenarios=%d max_ticks=%d\n\n", len(selected), maxTicks)

	var results []runResult
	for _, s := range selected {
		r := runScenario(s, maxTicks, verbose)
		results = append(results, r)
		printRun(r)
	}
	printAggregate(results)
}

// runScenario plays one battle to completion: the greedy policy drives the
// enemy side, and a scripted player drives the click protocol so the whole
// input path is exercised headlessly.
func runScenario(s scenario, maxTicks int, verbose bool) runResult {
	opts := append([]battle.BattleOption{}, s.opts...)
	opts = append(opts, battle.WithPolicy(battle.GreedyPolicy{}))
	tb := battle.NewTestBattle(opts...)

	for t := 0; t < maxTicks && !tb.Ended; t++ {
		if tb.Battle.Phase() == battle.PhasePlayer {
			autoClick(tb)
		}
		tb.Battle.Tick()
	}

	if verbose {
		fmt.Println(battle.Report(tb.Battle, 30))
	}

	return runResult{
		name:     s.name,
		ticks:    tb.Battle.CurrentTick(),
		phase:    tb.Battle.Phase(),
		deaths:   len(tb.Deaths),
		pAlive:   len(tb.Battle.LivingUnits(battle.TeamPlayer)),
		eAlive:   len(tb.Battle.LivingUnits(battle.TeamEnemy)),
		finished: tb.Ended,
	}
}

// autoClick plays the player side through the selector, one click per tick:
// select the next idle unit, step toward the closest enemy, attack whatever
// the selector reports as attackable.
func autoClick(tb *battle.TestBattle) {
	sel := tb.Battle.Selector()
	u := sel.SelectedUnit()

	if u == nil {
		for _, p := range tb.PlayerUnits() {
			if p.Alive() && p.State() == battle.UnitIdle {
				c := p.CurrentCell()
				tb.Click(c.X, c.Y)
				return
			}
		}
		return
	}

	switch u.State() {
	case battle.UnitSelected:
		dest := closestApproach(tb, u)
		tb.Click(dest.X, dest.Y)
	case battle.UnitWaitingForAttackTarget:
		targets := sel.AttackableTargets()
		if len(targets) == 0 {
			tb.Cancel()
			return
		}
		c := targets[0].CurrentCell()
		tb.Click(c.X, c.Y)
	}
}

// closestApproach picks the cached reachable cell nearest to a living enemy.
func closestApproach(tb *battle.TestBattle, u *battle.Unit) battle.Cell {
	enemies := tb.Battle.LivingUnits(battle.TeamEnemy)
	score := func(c battle.Cell) int {
		s := 1 << 20
		for _, e := range enemies {
			if d := battle.Chebyshev(c, e.CurrentCell()); d < s {
				s = d
			}
		}
		return s
	}
	best := u.CurrentCell()
	bestScore := score(best)
	for c := range tb.Battle.Selector().ReachableCells() {
		if s := score(c); s < bestScore || (s == bestScore && (c.Y < best.Y || (c.Y == best.Y && c.X < best.X))) {
			best = c
			bestScore = s
		}
	}
	return best
}

func printRun(r runResult) {
	status := "did not finish"
	if r.finished {
		status = r.phase.String()
	}
	fmt.Printf("[%s] %s after %d ticks: deaths=%d alive player=%d enemy=%d\n",
		r.name, status, r.ticks, r.deaths, r.pAlive, r.eAlive)
}

func printAggregate(results []runResult) {
	wins, losses, unfinished := 0, 0, 0
	totalTicks := 0
	for _, r := range results {
		totalTicks += r.ticks
		switch {
		case !r.finished:
			unfinished++
		case r.phase == battle.PhaseVictory:
			wins++
		default:
			losses++
		}
	}
	fmt.Printf("\n--- aggregate ---\n")
	fmt.Printf("battles=%d wins=%d losses=%d unfinished=%d avg_ticks=%d\n",
		len(results), wins, losses, unfinished, totalTicks/len(results))
}
