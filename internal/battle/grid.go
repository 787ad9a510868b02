package battle

import "fmt"

// cellSize is the edge length of one grid cell in world pixels.
const cellSize = 48

// Cell addresses one square of the battle grid.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chebyshev returns the Chebyshev (king-move) distance between two cells.
func Chebyshev(a, b Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// dirs4 is the fixed neighbour order for reachability searches.
// The order is part of the contract: BFS parent pointers (and therefore
// reconstructed paths) are deterministic for a given battlefield.
var dirs4 = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Grid is the authoritative spatial index: cell occupancy plus the range
// queries every other component consults. At most one unit occupies a cell,
// and a placed unit occupies exactly one cell.
type Grid struct {
	cols    int
	rows    int
	originX float64 // world-space position of cell (0,0)'s top-left corner
	originY float64

	occupants map[Cell]*Unit
	log       *BattleLog // optional; records rejected mutations
	tick      *int       // optional; stamps log entries
}

// NewGrid creates an empty grid of cols x rows cells with its top-left
// corner at the given world position.
func NewGrid(cols, rows int, originX, originY float64) *Grid {
	return &Grid{
		cols:      cols,
		rows:      rows,
		originX:   originX,
		originY:   originY,
		occupants: make(map[Cell]*Unit),
	}
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// InBounds returns true if c lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// CellToWorld returns the world-space centre of a cell.
func (g *Grid) CellToWorld(c Cell) (float64, float64) {
	return g.originX + float64(c.X)*cellSize + cellSize/2,
		g.originY + float64(c.Y)*cellSize + cellSize/2
}

// WorldToCell returns the cell containing a world-space point. Inverse of
// CellToWorld for cell centres. The result may be out of bounds; callers
// check InBounds.
func (g *Grid) WorldToCell(wx, wy float64) Cell {
	dx := wx - g.originX
	dy := wy - g.originY
	cx := int(dx) / cellSize
	cy := int(dy) / cellSize
	if dx < 0 {
		cx = -1 - (int(-dx) / cellSize)
	}
	if dy < 0 {
		cy = -1 - (int(-dy) / cellSize)
	}
	return Cell{X: cx, Y: cy}
}

// UnitAt returns the unit occupying c, or nil.
func (g *Grid) UnitAt(c Cell) *Unit {
	return g.occupants[c]
}

// PlaceUnit records u as the occupant of c. No-op if c is out of bounds,
// already occupied, or u is already placed somewhere on this grid.
func (g *Grid) PlaceUnit(c Cell, u *Unit) {
	if u == nil || !g.InBounds(c) {
		g.reject("place", c, u)
		return
	}
	if g.occupants[c] != nil {
		g.reject("place_occupied", c, u)
		return
	}
	for _, o := range g.occupants {
		if o == u {
			g.reject("place_twice", c, u)
			return
		}
	}
	g.occupants[c] = u
}

// MoveUnit relocates u from one cell to another. No-op if to is out of
// bounds or held by a different unit, or if u does not occupy from.
// Callers update the unit's own cell field in the same step so the two
// views never diverge.
func (g *Grid) MoveUnit(from, to Cell, u *Unit) {
	if u == nil || !g.InBounds(to) {
		g.reject("move", to, u)
		return
	}
	if g.occupants[from] != u {
		g.reject("move_not_at_from", from, u)
		return
	}
	if o := g.occupants[to]; o != nil && o != u {
		g.reject("move_occupied", to, u)
		return
	}
	delete(g.occupants, from)
	g.occupants[to] = u
}

// RemoveUnit clears the occupancy of c unconditionally. Used on death.
func (g *Grid) RemoveUnit(c Cell) {
	delete(g.occupants, c)
}

// ReachableCells runs a breadth-first search from origin, expanding
// 4-directionally with per-step cost 1, bounded by moveRange. Cells occupied
// by any unit (either team) block expansion; origin itself is always included
// and maps to itself. The returned map holds, for every reachable cell, the
// cell visited immediately before it on the shortest discovered path.
func (g *Grid) ReachableCells(origin Cell, moveRange int) map[Cell]Cell {
	reachable := make(map[Cell]Cell)
	if !g.InBounds(origin) || moveRange < 0 {
		return reachable
	}
	reachable[origin] = origin

	type frontierCell struct {
		cell Cell
		dist int
	}
	queue := []frontierCell{{cell: origin}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist >= moveRange {
			continue
		}
		for _, d := range dirs4 {
			next := Cell{X: cur.cell.X + d[0], Y: cur.cell.Y + d[1]}
			if !g.InBounds(next) {
				continue
			}
			if _, seen := reachable[next]; seen {
				continue
			}
			if g.occupants[next] != nil {
				continue
			}
			reachable[next] = cur.cell
			queue = append(queue, frontierCell{cell: next, dist: cur.dist + 1})
		}
	}
	return reachable
}

// ReconstructPath walks the BFS parent map from dest back to origin and
// returns the cells in origin→dest order, both inclusive. Returns an empty
// slice if dest is not in the parent map, and a single-cell path when
// dest == origin.
func ReconstructPath(parents map[Cell]Cell, origin, dest Cell) []Cell {
	if _, ok := parents[dest]; !ok {
		return nil
	}
	var rev []Cell
	for c := dest; ; c = parents[c] {
		rev = append(rev, c)
		if c == origin {
			break
		}
		if parents[c] == c {
			// Malformed map: a non-origin self-parent would loop forever.
			return nil
		}
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// AttackRangeCells returns every in-bounds cell within Chebyshev distance
// attackRange of origin (range 1 = the cell itself plus its 8 neighbours).
// Pure function of bounds, origin and range; occupancy is ignored.
func (g *Grid) AttackRangeCells(origin Cell, attackRange int) []Cell {
	if !g.InBounds(origin) || attackRange < 0 {
		return nil
	}
	var cells []Cell
	for dy := -attackRange; dy <= attackRange; dy++ {
		for dx := -attackRange; dx <= attackRange; dx++ {
			c := Cell{X: origin.X + dx, Y: origin.Y + dy}
			if g.InBounds(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// AttackableEnemies returns the living units of the opposing team whose cell
// lies within Chebyshev distance attackRange of origin.
func (g *Grid) AttackableEnemies(origin Cell, attackRange int, team Team) []*Unit {
	var out []*Unit
	for _, c := range g.AttackRangeCells(origin, attackRange) {
		u := g.occupants[c]
		if u == nil || u.team == team || !u.Alive() {
			continue
		}
		out = append(out, u)
	}
	return out
}

// reject records an invalid mutation attempt when a log is attached.
func (g *Grid) reject(key string, c Cell, u *Unit) {
	if g.log == nil {
		return
	}
	label := "--"
	team := "--"
	if u != nil {
		label = u.label
		team = teamLabel(u.team)
	}
	tick := 0
	if g.tick != nil {
		tick = *g.tick
	}
	g.log.Add(tick, label, team, "grid", key, c.String(), 0)
}
