package main

import (
	"log"

	"github.com/arvenhall/gridclash/internal/battle"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Gridclash")
	ebiten.SetWindowSize(880, 480)
	if err := ebiten.RunGame(battle.NewGame()); err != nil {
		log.Fatal(err)
	}
}
