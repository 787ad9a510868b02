package battle

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var hudFace font.Face = basicfont.Face7x13

var (
	colHUDText  = color.RGBA{R: 210, G: 210, B: 200, A: 255}
	colHUDDim   = color.RGBA{R: 130, G: 130, B: 120, A: 255}
	colVictory  = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	colDefeat   = color.RGBA{R: 230, G: 90, B: 70, A: 255}
	colHUDPanel = color.RGBA{R: 24, G: 24, B: 28, A: 255}
)

// drawHUD renders the phase banner and the right-hand inspector panel.
func (g *Game) drawHUD(screen *ebiten.Image) {
	grid := g.battle.Grid()
	panelX := g.offX + grid.Cols()*cellSize + borderWidth

	// Phase banner above the battlefield.
	banner := fmt.Sprintf("turn %d - %s", g.battle.Turn(), g.battle.Phase())
	bannerCol := colHUDText
	switch g.battle.Phase() {
	case PhaseVictory:
		banner = "VICTORY"
		bannerCol = colVictory
	case PhaseDefeat:
		banner = "DEFEAT"
		bannerCol = colDefeat
	}
	if g.paused {
		banner += "  [paused]"
	}
	text.Draw(screen, banner, hudFace, g.offX, g.offY-8, bannerCol)

	// Inspector panel.
	vector.DrawFilledRect(screen, float32(panelX), float32(g.offY),
		hudPanelWidth-borderWidth, float32(grid.Rows()*cellSize), colHUDPanel, false)

	y := g.offY + 16
	u := g.battle.Selector().SelectedUnit()
	if u == nil {
		u = grid.UnitAt(g.hoverCell)
	}
	if u == nil {
		text.Draw(screen, "no unit selected", hudFace, panelX+8, y, colHUDDim)
	} else {
		lines := []string{
			fmt.Sprintf("%s  (%s)", u.Label(), u.Template()),
			fmt.Sprintf("team:   %s", u.Team()),
			fmt.Sprintf("hp:     %d/%d", u.HP(), u.MaxHP()),
			fmt.Sprintf("atk/def %d/%d", u.Attack(), u.Defense()),
			fmt.Sprintf("move:   %d  range: %d", u.MoveRange(), u.AttackRange()),
			fmt.Sprintf("state:  %s", u.State()),
			fmt.Sprintf("moved=%v attacked=%v", u.HasMoved(), u.HasAttacked()),
		}
		for _, l := range lines {
			text.Draw(screen, l, hudFace, panelX+8, y, colHUDText)
			y += 14
		}
	}

	// Key legend at the bottom of the panel.
	legend := []string{
		"lmb  select / move / attack",
		"rmb  cancel / skip attack",
		"p    pause",
		"r    copy battle report",
	}
	ly := g.offY + grid.Rows()*cellSize - len(legend)*14
	for _, l := range legend {
		text.Draw(screen, l, hudFace, panelX+8, ly, colHUDDim)
		ly += 14
	}
}
