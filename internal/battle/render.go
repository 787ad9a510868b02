package battle

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const unitRadius = 14

var (
	colGridLine    = color.RGBA{R: 52, G: 56, B: 48, A: 255}
	colGround      = color.RGBA{R: 30, G: 38, B: 30, A: 255}
	colReachable   = color.RGBA{R: 60, G: 110, B: 200, A: 90}
	colAttackCell  = color.RGBA{R: 200, G: 70, B: 50, A: 70}
	colPathPreview = color.RGBA{R: 220, G: 220, B: 120, A: 200}
	colHover       = color.RGBA{R: 200, G: 200, B: 200, A: 120}
	colPlayer      = color.RGBA{R: 70, G: 130, B: 230, A: 255}
	colEnemy       = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	colSelection   = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	colDoneDim     = color.RGBA{R: 0, G: 0, B: 0, A: 110}
	colDead        = color.RGBA{R: 100, G: 100, B: 100, A: 180}
	colAttackLine  = color.RGBA{R: 255, G: 120, B: 60, A: 200}
	colHPBack      = color.RGBA{R: 40, G: 12, B: 12, A: 230}
	colHPFill      = color.RGBA{R: 70, G: 200, B: 80, A: 230}
)

// drawWorld renders the grid, highlights and units, offset by the border.
func (g *Game) drawWorld(screen *ebiten.Image) {
	grid := g.battle.Grid()
	ox, oy := float32(g.offX), float32(g.offY)
	w := float32(grid.Cols() * cellSize)
	h := float32(grid.Rows() * cellSize)

	vector.DrawFilledRect(screen, ox, oy, w, h, colGround, false)

	g.drawHighlights(screen)
	g.drawGridLines(screen)
	g.drawPathPreview(screen)
	g.drawHoverCell(screen)
	g.drawUnits(screen)
}

func (g *Game) drawGridLines(screen *ebiten.Image) {
	grid := g.battle.Grid()
	ox, oy := float32(g.offX), float32(g.offY)
	w := float32(grid.Cols() * cellSize)
	h := float32(grid.Rows() * cellSize)
	for x := 0; x <= grid.Cols(); x++ {
		fx := ox + float32(x*cellSize)
		vector.StrokeLine(screen, fx, oy, fx, oy+h, 1, colGridLine, false)
	}
	for y := 0; y <= grid.Rows(); y++ {
		fy := oy + float32(y*cellSize)
		vector.StrokeLine(screen, ox, fy, ox+w, fy, 1, colGridLine, false)
	}
}

// drawHighlights fills the selector's cached reachable set while choosing a
// destination, and the attack-range set while choosing a target.
func (g *Game) drawHighlights(screen *ebiten.Image) {
	sel := g.battle.Selector()
	u := sel.SelectedUnit()
	if u == nil {
		return
	}
	switch u.State() {
	case UnitSelected:
		for c := range sel.ReachableCells() {
			g.fillCell(screen, c, colReachable)
		}
	case UnitWaitingForAttackTarget:
		for c := range sel.AttackCells() {
			g.fillCell(screen, c, colAttackCell)
		}
	}
}

// drawPathPreview traces the path the selected unit would take to the
// hovered cell.
func (g *Game) drawPathPreview(screen *ebiten.Image) {
	sel := g.battle.Selector()
	u := sel.SelectedUnit()
	if u == nil || u.State() != UnitSelected {
		return
	}
	path := sel.PathTo(g.hoverCell)
	for i := 1; i < len(path); i++ {
		x0, y0 := g.cellCentre(path[i-1])
		x1, y1 := g.cellCentre(path[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colPathPreview, true)
	}
}

func (g *Game) drawHoverCell(screen *ebiten.Image) {
	if !g.battle.Grid().InBounds(g.hoverCell) {
		return
	}
	ox := float32(g.offX + g.hoverCell.X*cellSize)
	oy := float32(g.offY + g.hoverCell.Y*cellSize)
	vector.StrokeRect(screen, ox, oy, cellSize, cellSize, 1, colHover, false)
}

func (g *Game) drawUnits(screen *ebiten.Image) {
	sel := g.battle.Selector()
	for _, u := range g.battle.Units() {
		wx, wy := u.WorldPos()
		x := float32(g.offX) + float32(wx)
		y := float32(g.offY) + float32(wy)

		if !u.Alive() {
			// Grey cross where the unit fell.
			vector.StrokeLine(screen, x-6, y-6, x+6, y+6, 2, colDead, false)
			vector.StrokeLine(screen, x+6, y-6, x-6, y+6, 2, colDead, false)
			continue
		}

		c := colPlayer
		if u.Team() == TeamEnemy {
			c = colEnemy
		}
		vector.DrawFilledCircle(screen, x, y, unitRadius, c, true)

		// Attack-in-flight indicator.
		if u.State() == UnitAttacking && u.attackTarget != nil {
			tx, ty := u.attackTarget.WorldPos()
			vector.StrokeLine(screen, x, y,
				float32(g.offX)+float32(tx), float32(g.offY)+float32(ty), 2, colAttackLine, true)
		}

		// Spent units are dimmed.
		if u.State() == UnitDone {
			vector.DrawFilledCircle(screen, x, y, unitRadius, colDoneDim, true)
		}

		if sel.SelectedUnit() == u {
			vector.StrokeCircle(screen, x, y, unitRadius+3, 1.5, colSelection, true)
		}

		g.drawHPBar(screen, x, y, u)
	}
}

func (g *Game) drawHPBar(screen *ebiten.Image, x, y float32, u *Unit) {
	const barW, barH = 26, 4
	bx := x - barW/2
	by := y - unitRadius - 8
	vector.DrawFilledRect(screen, bx, by, barW, barH, colHPBack, false)
	frac := float32(u.HP()) / float32(u.MaxHP())
	vector.DrawFilledRect(screen, bx, by, barW*frac, barH, colHPFill, false)
}

func (g *Game) fillCell(screen *ebiten.Image, c Cell, col color.Color) {
	x := float32(g.offX + c.X*cellSize)
	y := float32(g.offY + c.Y*cellSize)
	vector.DrawFilledRect(screen, x, y, cellSize, cellSize, col, false)
}

func (g *Game) cellCentre(c Cell) (float32, float32) {
	wx, wy := g.battle.Grid().CellToWorld(c)
	return float32(g.offX) + float32(wx), float32(g.offY) + float32(wy)
}
