package battle

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded event during a battle.
type LogEntry struct {
	Tick     int
	Unit     string  // label e.g. "P0", "E3", or "--" for global events
	Team     string  // "player", "enemy", or "--"
	Category string  // grid, state, combat, unit, phase, input
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P0   state   change   selected → moving
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-8s %-14s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// BattleLog collects structured events during an engagement. It is unbounded
// and machine-readable: tests and the headless runner assert against it, and
// the in-game debug report formats it.
type BattleLog struct {
	entries []LogEntry
	verbose bool
}

// NewBattleLog creates a BattleLog. If verbose is true, per-tick state
// entries (unit positions, cached ranges) are also recorded.
func NewBattleLog(verbose bool) *BattleLog {
	return &BattleLog{verbose: verbose}
}

// Add records a new entry.
func (bl *BattleLog) Add(tick int, unit, team, category, key, value string, numVal float64) {
	bl.entries = append(bl.entries, LogEntry{
		Tick:     tick,
		Unit:     unit,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (bl *BattleLog) AddVerbose(tick int, unit, team, category, key, value string, numVal float64) {
	if !bl.verbose {
		return
	}
	bl.Add(tick, unit, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (bl *BattleLog) Entries() []LogEntry {
	return bl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (bl *BattleLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for a specific unit label.
func (bl *BattleLog) FilterUnit(label string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Unit == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (bl *BattleLog) FilterTickRange(fromTick, toTick int) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (bl *BattleLog) CountCategory(category, key string) int {
	return len(bl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (bl *BattleLog) LastOf(category, key string) (LogEntry, bool) {
	entries := bl.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring. Empty arguments match anything.
func (bl *BattleLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (bl *BattleLog) Format() string {
	var sb strings.Builder
	for _, e := range bl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (bl *BattleLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range bl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
