package background

import (
	"errors"
	"image/color"
	"math"
	"slices"
	"testing"

	"backdrop/internal/core"
	"backdrop/internal/frame"
)

type drawOp struct {
	kind           string
	x0, y0, x1, y1 float64
	c              color.NRGBA
}

type recorder struct {
	size    core.Size
	resizes int
	ops     []drawOp
}

func (r *recorder) Resize(size core.Size) { r.size = size; r.resizes++ }
func (r *recorder) Clear() { r.ops = r.ops[:0] }
func (r *recorder) Line(x0, y0, x1, y1, _ float64, c color.NRGBA) {
	r.ops = append(r.ops, drawOp{kind: "line", x0: x0, y0: y0, x1: x1, y1: y1, c: c})
}
func (r *recorder) GradientLine(x0, y0, x1, y1, _ float64, _, to color.NRGBA) {
	r.ops = append(r.ops, drawOp{kind: "gradient", x0: x0, y0: y0, x1: x1, y1: y1, c: to})
}
func (r *recorder) Circle(x, y, _ float64, c color.NRGBA) {
	r.ops = append(r.ops, drawOp{kind: "circle", x0: x, y0: y, c: c})
}
func (r *recorder) Glow(x, y, _, _ float64, fill, _ color.NRGBA) {
	r.ops = append(r.ops, drawOp{kind: "glow", x0: x, y0: y, c: fill})
}

type testHost struct {
	*frame.Loop
	surface    core.Surface
	surfaceErr error
	panicOnReq bool
}

func (h *testHost) Surface() (core.Surface, error) { return h.surface, h.surfaceErr }

func (h *testHost) RequestFrame(fn func()) frame.ID {
	if h.panicOnReq {
		panic("scheduler gone")
	}
	return h.Loop.RequestFrame(fn)
}

func newTestHost(w, h int) (*testHost, *recorder) {
	rec := &recorder{}
	return &testHost{Loop: frame.NewLoop(core.Size{W: w, H: h}), surface: rec}, rec
}

func headless(w, h int) *Engine {
	e := New(DefaultConfig())
	e.Resize(core.Size{W: w, H: h})
	e.Reset(e.cfg.Seed)
	return e
}

func TestPopulationConstant(t *testing.T) {
	e := headless(800, 600)
	for i := 0; i < 2000; i++ {
		if i == 700 {
			e.Resize(core.Size{W: 320, H: 200})
		}
		e.AdvanceFrame()
		if len(e.Signals()) != 15 || len(e.Nodes()) != 30 {
			t.Fatalf("frame %d: populations %d/%d, want 15/30", i, len(e.Signals()), len(e.Nodes()))
		}
	}
}

func TestNodeReflectsAtBoundary(t *testing.T) {
	n := Node{X: 10, Y: 595, VX: 0, VY: 2}

	n.advance(800, 600)
	if n.Y != 597 || n.VY != 2 {
		t.Fatalf("after first advance y=%v vy=%v, want 597 and 2", n.Y, n.VY)
	}
	n.advance(800, 600)
	if n.Y != 599 || n.VY != 2 {
		t.Fatalf("after second advance y=%v vy=%v, want 599 and 2", n.Y, n.VY)
	}
	n.advance(800, 600)
	if n.Y != 601 {
		t.Fatalf("position must overshoot without clamping, got y=%v", n.Y)
	}
	if n.VY != -2 {
		t.Fatalf("vy=%v after crossing, want -2", n.VY)
	}
	n.advance(800, 600)
	if n.Y != 599 || n.VY != -2 {
		t.Fatalf("after reflection y=%v vy=%v, want 599 and -2", n.Y, n.VY)
	}
}

func TestNodeStrandedByResizeWalksBack(t *testing.T) {
	n := Node{X: 700, Y: 100, VX: 0.25, VY: 0}
	n.advance(400, 300)
	if n.VX >= 0 {
		t.Fatal("outward velocity not reflected")
	}
	prev := n.X
	for i := 0; i < 10; i++ {
		n.advance(400, 300)
		if n.X >= prev {
			t.Fatalf("node outside the surface stopped heading back: x=%v prev=%v", n.X, prev)
		}
		prev = n.X
	}
}

func TestSignalResetsPastBound(t *testing.T) {
	cfg := DefaultConfig()
	theme := themeFor(cfg.Theme)
	size := core.Size{W: 800, H: 600}
	rng := core.NewRNG(1)
	s := Signal{Orientation: Horizontal, Speed: 3}

	for i := 0; i < 300; i++ {
		if s.advance(s.Extent(size), &cfg, &theme, size, rng) {
			t.Fatalf("reset after %d advances", i+1)
		}
	}
	if s.Progress != 900 {
		t.Fatalf("progress=%v after 300 advances, want 900", s.Progress)
	}
	for i := 0; i < 33; i++ {
		if s.advance(s.Extent(size), &cfg, &theme, size, rng) {
			t.Fatalf("reset early at progress %v", s.Progress)
		}
	}
	if s.Progress != 999 {
		t.Fatalf("progress=%v, want 999", s.Progress)
	}
	if !s.advance(s.Extent(size), &cfg, &theme, size, rng) {
		t.Fatal("signal at 1002 did not reset")
	}
	if s.Progress != 0 {
		t.Fatalf("progress=%v after reset, want 0", s.Progress)
	}
	if s.Speed < cfg.SpeedMin || s.Speed >= cfg.SpeedMax {
		t.Fatalf("speed %v outside [%v,%v)", s.Speed, cfg.SpeedMin, cfg.SpeedMax)
	}
	if s.Color != theme.Primary && s.Color != theme.Accent {
		t.Fatalf("unexpected color %v", s.Color)
	}
	if math.Mod(s.Line, cfg.GridSize) != 0 {
		t.Fatalf("line %v is not grid aligned", s.Line)
	}
}

func TestSignalResetDistribution(t *testing.T) {
	cfg := DefaultConfig()
	theme := themeFor(cfg.Theme)
	size := core.Size{W: 800, H: 600}
	rng := core.NewRNG(5)
	var s Signal
	primary, vertical := 0, 0
	const trials = 4000
	for i := 0; i < trials; i++ {
		s.reset(&cfg, &theme, size, rng)
		if s.Color == theme.Primary {
			primary++
		}
		limit := float64(size.H)
		if s.Orientation == Vertical {
			vertical++
			limit = float64(size.W)
		}
		if s.Line < 0 || s.Line >= limit {
			t.Fatalf("line %v outside [0,%v)", s.Line, limit)
		}
		if s.Radius < cfg.DotMin || s.Radius >= cfg.DotMax {
			t.Fatalf("radius %v outside range", s.Radius)
		}
	}
	if share := float64(primary) / trials; share < 0.65 || share > 0.75 {
		t.Fatalf("favored hue share %.3f, want about 0.7", share)
	}
	if share := float64(vertical) / trials; share < 0.45 || share > 0.55 {
		t.Fatalf("vertical share %.3f, want about 0.5", share)
	}
}

func TestSimulationInvariants(t *testing.T) {
	e := headless(640, 480)
	cfg := e.Config()
	for frame := 0; frame < 3000; frame++ {
		e.AdvanceFrame()
		size := e.Size()
		for i, n := range e.Nodes() {
			if n.X < -math.Abs(n.VX) || n.X > float64(size.W)+math.Abs(n.VX) ||
				n.Y < -math.Abs(n.VY) || n.Y > float64(size.H)+math.Abs(n.VY) {
				t.Fatalf("frame %d: node %d at (%v,%v) escaped the surface", frame, i, n.X, n.Y)
			}
		}
		for i := range e.Signals() {
			s := &e.Signals()[i]
			if bound := s.Extent(size) + cfg.Overshoot; s.Progress > bound {
				t.Fatalf("frame %d: signal %d progress %v past bound %v", frame, i, s.Progress, bound)
			}
		}
	}
}

func TestLinkSymmetry(t *testing.T) {
	rng := core.NewRNG(11)
	cfg := DefaultConfig()
	size := core.Size{W: 500, H: 500}
	for i := 0; i < 500; i++ {
		a := newNode(&cfg, size, rng)
		b := newNode(&cfg, size, rng)
		ab, okAB := Link(a, b, cfg.ConnectionDistance, cfg.LinkAlpha)
		ba, okBA := Link(b, a, cfg.ConnectionDistance, cfg.LinkAlpha)
		if okAB != okBA || ab != ba {
			t.Fatalf("asymmetric link: (%v,%v) vs (%v,%v)", ab, okAB, ba, okBA)
		}
		dist := math.Hypot(a.X-b.X, a.Y-b.Y)
		if okAB != (dist < cfg.ConnectionDistance) {
			t.Fatalf("link=%v for distance %v", okAB, dist)
		}
		if okAB && (ab < 0 || ab > cfg.LinkAlpha) {
			t.Fatalf("alpha %v outside [0,%v]", ab, cfg.LinkAlpha)
		}
	}

	touching, _ := Link(Node{}, Node{}, 150, 0.1)
	if touching != 0.1 {
		t.Fatalf("touching nodes alpha=%v, want the cap", touching)
	}
	if _, ok := Link(Node{}, Node{X: 150}, 150, 0.1); ok {
		t.Fatal("nodes exactly at the threshold must not link")
	}
}

func TestFrameDrawsOneLinkPerConnectedPair(t *testing.T) {
	host, rec := newTestHost(800, 600)
	e := New(DefaultConfig())
	if err := e.Start(host); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer e.Stop()
	host.Tick()

	link := e.Theme().Link
	got := 0
	for _, op := range rec.ops {
		if op.kind == "line" && op.c.R == link.R && op.c.G == link.G && op.c.B == link.B {
			got++
		}
	}
	want := 0
	nodes := e.Nodes()
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if _, ok := Link(nodes[i], nodes[j], e.Config().ConnectionDistance, e.Config().LinkAlpha); ok {
				want++
			}
		}
	}
	if got != want {
		t.Fatalf("drew %d links, want %d", got, want)
	}
}

func TestFrameOrder(t *testing.T) {
	host, rec := newTestHost(800, 600)
	e := New(DefaultConfig())
	if err := e.Start(host); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer e.Stop()
	host.Tick()

	kinds := make([]string, 0, len(rec.ops))
	for _, op := range rec.ops {
		kinds = append(kinds, op.kind)
	}
	lastCircle := -1
	for i, k := range kinds {
		if k == "circle" {
			lastCircle = i
		}
	}
	firstGradient := slices.Index(kinds, "gradient")
	if lastCircle < 0 || firstGradient < 0 {
		t.Fatalf("frame missing nodes or signals: %v", kinds)
	}
	if firstGradient < lastCircle {
		t.Fatal("signals drawn before all nodes")
	}
	if kinds[0] != "line" {
		t.Fatalf("frame must start with the grid, got %q", kinds[0])
	}
	if n := len(slices.DeleteFunc(slices.Clone(kinds), func(k string) bool { return k != "glow" })); n != 15 {
		t.Fatalf("drew %d signal heads, want 15", n)
	}
}

func TestLifecycle(t *testing.T) {
	host, _ := newTestHost(800, 600)
	e := New(DefaultConfig())

	e.Stop()
	if e.State() != StateUninitialized {
		t.Fatalf("stop before start changed state to %s", e.State())
	}

	if err := e.Start(host); err != nil {
		t.Fatalf("start: %v", err)
	}
	if e.State() != StateRunning {
		t.Fatalf("state=%s after start", e.State())
	}
	if host.Listeners() != 1 || host.Pending() != 1 {
		t.Fatalf("start registered %d listeners and %d frames", host.Listeners(), host.Pending())
	}
	for i := 0; i < 5; i++ {
		host.Tick()
	}
	if e.Frames() != 5 {
		t.Fatalf("frames=%d after 5 ticks", e.Frames())
	}
	if err := e.Start(host); err == nil {
		t.Fatal("second start on a running engine succeeded")
	}

	e.Stop()
	e.Stop()
	if e.State() != StateDisposed {
		t.Fatalf("state=%s after stop", e.State())
	}
	if host.Listeners() != 0 || host.Pending() != 0 {
		t.Fatalf("stop leaked %d listeners and %d frames", host.Listeners(), host.Pending())
	}
	host.Tick()
	host.Resize(core.Size{W: 10, H: 10})
	host.Tick()
	if e.Frames() != 5 {
		t.Fatal("frame ran after stop")
	}
	if e.Size() != (core.Size{W: 800, H: 600}) {
		t.Fatal("resize reached a stopped engine")
	}
}

func TestStartWithoutSurfaceStaysInert(t *testing.T) {
	host, _ := newTestHost(800, 600)
	host.surfaceErr = errors.New("no context")
	e := New(DefaultConfig())

	err := e.Start(host)
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err=%v, want ErrNoSurface", err)
	}
	if host.Listeners() != 0 || host.Pending() != 0 {
		t.Fatal("failed start left registrations behind")
	}
	e.Stop()
	host.Tick()
	if e.Frames() != 0 {
		t.Fatal("inert engine advanced")
	}

	nilHost := &testHost{Loop: frame.NewLoop(core.Size{})}
	if err := New(DefaultConfig()).Start(nilHost); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("nil surface err=%v", err)
	}
}

func TestStartReleasesOnAbort(t *testing.T) {
	host, _ := newTestHost(800, 600)
	host.panicOnReq = true
	e := New(DefaultConfig())
	if err := e.Start(host); err == nil {
		t.Fatal("start succeeded with a broken scheduler")
	}
	if host.Listeners() != 0 {
		t.Fatal("resize listener leaked after aborted start")
	}
	if e.State() != StateUninitialized {
		t.Fatalf("state=%s after aborted start", e.State())
	}
	e.Stop()
}

func TestResizePreservesEntities(t *testing.T) {
	host, rec := newTestHost(800, 600)
	e := New(DefaultConfig())
	if err := e.Start(host); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer e.Stop()
	host.Tick()

	signals := slices.Clone(e.Signals())
	nodes := slices.Clone(e.Nodes())
	sigPtr, nodePtr := &e.Signals()[0], &e.Nodes()[0]

	e.Resize(core.Size{W: 1280, H: 720})
	if e.Size() != (core.Size{W: 1280, H: 720}) || rec.size != e.Size() {
		t.Fatalf("size=%v surface=%v after resize", e.Size(), rec.size)
	}
	if !slices.Equal(signals, e.Signals()) || !slices.Equal(nodes, e.Nodes()) {
		t.Fatal("resize changed entity state")
	}
	if &e.Signals()[0] != sigPtr || &e.Nodes()[0] != nodePtr {
		t.Fatal("resize reallocated a population")
	}

	host.Resize(core.Size{W: 300, H: 200})
	host.Tick()
	if e.Size() != (core.Size{W: 300, H: 200}) {
		t.Fatalf("resize event not applied, size=%v", e.Size())
	}
	if len(e.Signals()) != len(signals) || len(e.Nodes()) != len(nodes) {
		t.Fatal("resize changed population size")
	}
}

func TestResetDeterministic(t *testing.T) {
	a := headless(800, 600)
	b := headless(800, 600)
	for i := 0; i < 50; i++ {
		a.AdvanceFrame()
		b.AdvanceFrame()
	}
	if !slices.Equal(a.Nodes(), b.Nodes()) || !slices.Equal(a.Signals(), b.Signals()) {
		t.Fatal("same seed produced different simulations")
	}
	for _, s := range a.Signals() {
		if s.Progress < 0 {
			t.Fatalf("negative progress %v", s.Progress)
		}
	}
}
