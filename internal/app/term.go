package app

import (
	"context"
	"log"
	"time"

	"backdrop/internal/background"
	"backdrop/internal/config"
	"backdrop/internal/fade"
	"backdrop/internal/frame"
	"backdrop/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Terminal hosts the background in a tcell screen. Each cell stands for a
// block of surface units so the animation keeps its proportions.
type Terminal struct {
	cfg     *config.Config
	screen  tcell.Screen
	loop    *frame.Loop
	surface *render.TermSurface
	engine  *background.Engine
	fader   *fade.Fader
	paused  bool
}

// NewTerminal mounts the background on an initialised screen. A mount
// failure is logged and the screen stays blank.
func NewTerminal(screen tcell.Screen, cfg *config.Config) *Terminal {
	engine := background.New(cfg.Engine)
	surface := render.NewTermSurface(render.DefaultCellW, render.DefaultCellH, engine.Theme().Background)
	cols, rows := screen.Size()
	t := &Terminal{
		cfg:     cfg,
		screen:  screen,
		loop:    frame.NewLoop(surface.ViewportFor(cols, rows)),
		surface: surface,
		engine:  engine,
		fader:   fade.New(cfg.FPS, 0, cfg.Opacity),
	}
	if err := engine.Start(NewHost(t.loop, surface)); err != nil {
		log.Printf("background disabled: %v", err)
	}
	return t
}

// Engine returns the mounted engine.
func (t *Terminal) Engine() *background.Engine { return t.engine }

// Run drives frames until ctx is done or the user quits. The engine is
// stopped and the screen finalised on return.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.screen.Fini()
	defer t.engine.Stop()

	fps := t.cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			t.Frame()
		}
	}
}

// Handle reacts to one screen event and reports whether to keep running.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.paused = !t.paused
			}
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.screen.Sync()
		t.loop.Resize(t.surface.ViewportFor(cols, rows))
	}
	return true
}

// Frame advances the loop once and paints the surface.
func (t *Terminal) Frame() {
	if !t.paused {
		t.loop.Tick()
	}
	t.surface.SetOpacity(t.fader.Step())
	t.surface.Flush(t.screen)
	t.screen.Show()
}
