//go:build ebiten

package app

import (
	"log"

	"backdrop/internal/background"
	"backdrop/internal/config"
	"backdrop/internal/core"
	"backdrop/internal/fade"
	"backdrop/internal/frame"
	"backdrop/internal/render"
	"backdrop/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

// Game adapts a background engine to the ebiten.Game interface. The window
// plays the page: Layout reports viewport changes and every Update that the
// fixed step allows is one display frame.
type Game struct {
	cfg     *config.Config
	loop    *frame.Loop
	surface *render.EbitenSurface
	engine  *background.Engine
	fader   *fade.Fader
	step    *core.FixedStep
	hud     *ui.HUD
	overlay *ui.Overlay

	showHUD bool
	paused  bool
	tick    bool
}

// New constructs a Game and mounts the background.
func New(cfg *config.Config) *Game {
	size := core.Size{W: cfg.Width, H: cfg.Height}
	g := &Game{
		cfg:     cfg,
		loop:    frame.NewLoop(size),
		surface: render.NewEbitenSurface(size),
		step:    core.NewFixedStep(cfg.FPS),
		showHUD: cfg.HUD,
	}
	g.hud = ui.NewHUD(nil, hudWidth, "Backdrop")
	g.overlay = ui.NewOverlay(nil)
	g.mount()
	return g
}

// mount creates a fresh engine on the shared loop and fades it in. A mount
// failure is logged and leaves the page without a background.
func (g *Game) mount() {
	g.engine = background.New(g.cfg.Engine)
	if err := g.engine.Start(NewHost(g.loop, g.surface)); err != nil {
		log.Printf("background disabled: %v", err)
	}
	g.fader = fade.New(g.cfg.FPS, 0, g.cfg.Opacity)
	g.hud.SetSource(g.engine)
	g.overlay.SetSubject(g.engine)
}

// Remount stops the current engine and mounts a new one, as when the page
// hosting the background is navigated away from and back to.
func (g *Game) Remount() {
	g.engine.Stop()
	g.mount()
}

// Close stops the engine. It is safe to call more than once.
func (g *Game) Close() {
	g.engine.Stop()
}

// Engine returns the mounted engine.
func (g *Game) Engine() *background.Engine { return g.engine }

// Update handles input and advances the frame loop.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tick = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Remount()
	}

	g.overlay.Update()
	if g.showHUD {
		g.hud.Update(g.loop.Viewport().W - g.hud.Width())
	}

	if !g.step.ShouldStep() {
		return nil
	}
	if !g.paused || g.tick {
		g.loop.Tick()
		g.tick = false
	}
	g.fader.Step()
	return nil
}

// Draw fills the page background and composites the faded layer over it.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.engine.Theme().Background)
	g.surface.Present(screen, g.fader.Value())
	g.overlay.Draw(screen)
	if g.showHUD {
		size := g.loop.Viewport()
		g.hud.Draw(screen, size.W-g.hud.Width(), size.H)
	}
}

// Layout follows the window size; changes reach the engine on the next tick.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.loop.Resize(core.Size{W: outsideWidth, H: outsideHeight})
	return outsideWidth, outsideHeight
}
