// Package background simulates and draws the circuit/neural backdrop: signals
// travelling along grid lines and drifting nodes joined by proximity links.
package background

import (
	"errors"
	"fmt"

	"backdrop/internal/core"
	"backdrop/internal/frame"
)

// ErrNoSurface is returned by Start when the host cannot provide a surface.
var ErrNoSurface = errors.New("background: drawing surface unavailable")

// State is the lifecycle stage of an Engine.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return "uninitialized"
	}
}

// Host supplies the drawing surface, frame scheduling and viewport resize
// notifications an Engine needs while mounted.
type Host interface {
	Surface() (core.Surface, error)
	Viewport() core.Size
	RequestFrame(fn func()) frame.ID
	CancelFrame(id frame.ID)
	OnResize(fn func(core.Size)) (remove func())
}

// Engine owns both entity populations and the surface they are drawn on.
// It is not safe for concurrent use; hosts drive it from a single goroutine.
type Engine struct {
	cfg   Config
	theme Theme
	rng   *core.RNG

	size    core.Size
	surface core.Surface
	signals []Signal
	nodes   []Node

	state    State
	host     Host
	frameID  frame.ID
	unlisten func()
	frames   uint64
}

// New returns an engine for cfg. The populations are allocated immediately
// and seeded against an empty surface; Start reseeds them for the viewport.
func New(cfg Config) *Engine {
	if cfg.Signals < 0 {
		cfg.Signals = 0
	}
	if cfg.Nodes < 0 {
		cfg.Nodes = 0
	}
	e := &Engine{
		cfg:     cfg,
		theme:   themeFor(cfg.Theme),
		surface: core.NopSurface{},
		signals: make([]Signal, cfg.Signals),
		nodes:   make([]Node, cfg.Nodes),
	}
	e.Reset(cfg.Seed)
	return e
}

// Reset reseeds every entity for the current surface size. Signals are
// scattered along their travel so the first frame is not empty.
func (e *Engine) Reset(seed int64) {
	e.rng = core.NewRNG(seed)
	scatter := float64(e.size.Max())
	for i := range e.signals {
		s := &e.signals[i]
		s.reset(&e.cfg, &e.theme, e.size, e.rng)
		s.Progress = e.rng.Float64() * scatter
	}
	for i := range e.nodes {
		e.nodes[i] = newNode(&e.cfg, e.size, e.rng)
	}
}

// Start mounts the engine on host: it acquires the surface, sizes it to the
// viewport, seeds the populations, subscribes to resizes and requests the
// first frame. When the surface cannot be acquired the engine stays inert
// and the error is returned for the host to log; nothing is left registered.
func (e *Engine) Start(host Host) (err error) {
	if e.state != StateUninitialized {
		return fmt.Errorf("background: start in state %s", e.state)
	}
	if host == nil {
		return ErrNoSurface
	}
	surface, err := host.Surface()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoSurface, err)
	}
	if surface == nil {
		return ErrNoSurface
	}

	e.host = host
	defer func() {
		if r := recover(); r != nil {
			e.release()
			e.state = StateUninitialized
			e.host = nil
			e.surface = core.NopSurface{}
			err = fmt.Errorf("background: start aborted: %v", r)
		}
	}()

	e.surface = surface
	e.Resize(host.Viewport())
	e.Reset(e.cfg.Seed)
	e.unlisten = host.OnResize(e.Resize)
	e.state = StateRunning
	e.frameID = host.RequestFrame(e.tick)
	return nil
}

// Stop deregisters the resize listener and cancels the pending frame. It is
// safe to call any number of times, including before Start.
func (e *Engine) Stop() {
	if e.state != StateRunning {
		return
	}
	e.release()
	e.state = StateDisposed
}

func (e *Engine) release() {
	if e.unlisten != nil {
		e.unlisten()
		e.unlisten = nil
	}
	if e.host != nil && e.frameID != 0 {
		e.host.CancelFrame(e.frameID)
	}
	e.frameID = 0
}

func (e *Engine) tick() {
	e.frameID = 0
	if e.state != StateRunning {
		return
	}
	e.AdvanceFrame()
	e.frameID = e.host.RequestFrame(e.tick)
}

// Resize records new surface dimensions and resizes the surface. Entities
// keep their positions; they meet the new bounds on their next advance.
func (e *Engine) Resize(size core.Size) {
	if size.W < 0 {
		size.W = 0
	}
	if size.H < 0 {
		size.H = 0
	}
	e.size = size
	e.surface.Resize(size)
}

// AdvanceFrame runs one frame: clear, grid, advance and draw nodes with their
// links, then advance and draw signals.
func (e *Engine) AdvanceFrame() {
	e.frames++
	dst := e.surface
	dst.Clear()
	e.drawGrid(dst)

	w, h := float64(e.size.W), float64(e.size.H)
	for i := range e.nodes {
		e.nodes[i].advance(w, h)
	}
	e.drawNodes(dst)

	for i := range e.signals {
		s := &e.signals[i]
		s.advance(s.Extent(e.size), &e.cfg, &e.theme, e.size, e.rng)
		s.draw(dst, &e.cfg, &e.theme)
	}
}

func (e *Engine) drawGrid(dst core.Surface) {
	step := e.cfg.GridSize
	if step <= 0 || e.size.Empty() {
		return
	}
	w, h := float64(e.size.W), float64(e.size.H)
	for x := 0.0; x <= w; x += step {
		dst.Line(x, 0, x, h, 1, e.theme.Grid)
	}
	for y := 0.0; y <= h; y += step {
		dst.Line(0, y, w, y, 1, e.theme.Grid)
	}
}

// drawNodes checks every unordered pair once per frame. At tens of nodes the
// quadratic scan is cheaper than maintaining any spatial index.
func (e *Engine) drawNodes(dst core.Surface) {
	for i := range e.nodes {
		a := e.nodes[i]
		dst.Circle(a.X, a.Y, a.Radius, e.theme.Node)
		for j := i + 1; j < len(e.nodes); j++ {
			b := e.nodes[j]
			alpha, ok := Link(a, b, e.cfg.ConnectionDistance, e.cfg.LinkAlpha)
			if !ok {
				continue
			}
			dst.Line(a.X, a.Y, b.X, b.Y, 1, withAlpha(e.theme.Link, alpha))
		}
	}
}

// State reports the lifecycle stage.
func (e *Engine) State() State { return e.state }

// Size returns the stored surface dimensions.
func (e *Engine) Size() core.Size { return e.size }

// Frames returns the number of frames advanced so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Theme returns the active palette.
func (e *Engine) Theme() Theme { return e.theme }

// Signals exposes the signal population. The slice is never resized.
func (e *Engine) Signals() []Signal { return e.signals }

// Nodes exposes the node population. The slice is never resized.
func (e *Engine) Nodes() []Node { return e.nodes }
