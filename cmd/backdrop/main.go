//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"backdrop/internal/app"
	"backdrop/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Load(); err != nil {
		log.Fatal(err)
	}

	game := app.New(cfg)
	defer game.Close()

	ebiten.SetWindowTitle("backdrop (" + cfg.Engine.Theme + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
