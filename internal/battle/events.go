package battle

// Observer receives battle notifications. Reward, scene-transition and UI
// collaborators subscribe through Battle.Subscribe.
type Observer interface {
	// UnitDied fires once per death, after the unit's grid cell is freed.
	UnitDied(u *Unit)
	// BattleEnded fires once, when the match reaches Victory or Defeat.
	BattleEnded(victory bool)
}

// eventQueue buffers notifications raised while the tick is mutating state.
// The battle drains it exactly once at the end of each tick, so observers
// only ever see fully consistent state.
type eventQueue struct {
	deaths []*Unit

	endQueued  bool
	endVictory bool
	endFired   bool
}

func (q *eventQueue) queueDeath(u *Unit) {
	q.deaths = append(q.deaths, u)
}

func (q *eventQueue) queueBattleEnd(victory bool) {
	if q.endQueued || q.endFired {
		return
	}
	q.endQueued = true
	q.endVictory = victory
}

// drain delivers queued notifications in order: deaths first, then the
// battle-ended signal that those deaths may have caused.
func (q *eventQueue) drain(observers []Observer) {
	for _, u := range q.deaths {
		for _, o := range observers {
			o.UnitDied(u)
		}
	}
	q.deaths = q.deaths[:0]

	if q.endQueued && !q.endFired {
		q.endFired = true
		q.endQueued = false
		for _, o := range observers {
			o.BattleEnded(q.endVictory)
		}
	}
}
