package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"backdrop/internal/app"
	"backdrop/internal/config"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Load(); err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewTerminal(screen, cfg).Run(ctx); err != nil {
		log.Fatal(err)
	}
}
