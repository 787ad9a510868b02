package battle

import (
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// hudPanelWidth is the width of the right-hand inspector panel.
const hudPanelWidth = 220

// Game is the ebiten shell around a Battle: it owns the window, translates
// pointer input into selector events, and renders the battlefield and HUD.
// All battle logic lives in Battle; Game only reads state and forwards input.
type Game struct {
	battle *Battle

	width  int
	height int
	offX   int
	offY   int

	paused bool

	hoverCell Cell

	prevKeys       map[ebiten.Key]bool
	prevMouseLeft  bool
	prevMouseRight bool
}

// NewGame builds the default skirmish: a small player warband on the left,
// raiders holding the right side.
func NewGame() *Game {
	placements := []Placement{
		{Template: TemplateKnight, Team: TeamPlayer, Cell: Cell{X: 1, Y: 2}},
		{Template: TemplateArcher, Team: TeamPlayer, Cell: Cell{X: 0, Y: 3}, Bonus: StatBonus{Attack: 1}},
		{Template: TemplatePikeman, Team: TeamPlayer, Cell: Cell{X: 1, Y: 4}},
		{Template: TemplateRaider, Team: TeamEnemy, Cell: Cell{X: 10, Y: 2}},
		{Template: TemplateRaider, Team: TeamEnemy, Cell: Cell{X: 11, Y: 3}},
		{Template: TemplateBrute, Team: TeamEnemy, Cell: Cell{X: 10, Y: 5}},
	}

	const cols, rows = 12, 8
	b := NewBattle(cols, rows, placements, NewBattleLog(false))
	b.SetPolicy(GreedyPolicy{})

	return &Game{
		battle:   b,
		width:    borderWidth + cols*cellSize + borderWidth + hudPanelWidth,
		height:   borderWidth + rows*cellSize + borderWidth,
		offX:     borderWidth,
		offY:     borderWidth,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

// Update handles input and advances the battle one tick per frame.
func (g *Game) Update() error {
	g.handleInput()
	if !g.paused {
		g.battle.Tick()
	}
	return nil
}

// handleInput processes pointer and key events (edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	mx, my := ebiten.CursorPosition()
	g.hoverCell = g.battle.Grid().WorldToCell(float64(mx-g.offX), float64(my-g.offY))

	// Left click: primary click on the hovered cell.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft {
		g.battle.Selector().Click(g.hoverCell)
	}
	g.prevMouseLeft = left

	// Right click or Escape: cancel.
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && !g.prevMouseRight {
		g.battle.Selector().Cancel()
	}
	g.prevMouseRight = right

	currentKeys[ebiten.KeyEscape] = ebiten.IsKeyPressed(ebiten.KeyEscape)
	if currentKeys[ebiten.KeyEscape] && !g.prevKeys[ebiten.KeyEscape] {
		g.battle.Selector().Cancel()
	}

	// P: pause/resume.
	currentKeys[ebiten.KeyP] = ebiten.IsKeyPressed(ebiten.KeyP)
	if currentKeys[ebiten.KeyP] && !g.prevKeys[ebiten.KeyP] {
		g.paused = !g.paused
	}

	// R: copy the battle report to the clipboard.
	currentKeys[ebiten.KeyR] = ebiten.IsKeyPressed(ebiten.KeyR)
	if currentKeys[ebiten.KeyR] && !g.prevKeys[ebiten.KeyR] {
		_ = clipboard.WriteAll(Report(g.battle, 40))
	}

	g.prevKeys = currentKeys
}

// Draw renders the battlefield and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	g.drawWorld(screen)
	g.drawHUD(screen)
}

// Layout reports the fixed window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
