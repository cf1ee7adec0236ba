package render

import (
	"image/color"
	"math"

	"backdrop/internal/core"

	"github.com/gdamore/tcell/v2"
)

// Default terminal cell footprint in surface units. Terminal cells are about
// twice as tall as they are wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// shade maps cell coverage to block glyphs, faintest first.
var shade = []rune{' ', '·', '░', '▒', '▓', '█'}

type cell struct {
	r, g, b, a float64
}

// TermSurface rasterises drawing operations onto a grid of terminal cells.
// Colours are composited with the "over" operator in premultiplied space.
type TermSurface struct {
	CellW, CellH int

	size core.Size
	grid *core.Grid[cell]
	bg   color.NRGBA
	// opacity scales the layer when flushed; the host fades it in.
	opacity float64
}

// NewTermSurface creates a surface whose cells cover cellW x cellH units.
func NewTermSurface(cellW, cellH int, bg color.NRGBA) *TermSurface {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	return &TermSurface{CellW: cellW, CellH: cellH, grid: core.NewGrid[cell](0, 0), bg: bg, opacity: 1}
}

// ViewportFor converts a terminal size in cells into surface units.
func (t *TermSurface) ViewportFor(cols, rows int) core.Size {
	return core.Size{W: cols * t.CellW, H: rows * t.CellH}
}

// Resize reallocates the cell grid to cover size.
func (t *TermSurface) Resize(size core.Size) {
	t.size = size
	cols := (size.W + t.CellW - 1) / t.CellW
	rows := (size.H + t.CellH - 1) / t.CellH
	if cols != t.grid.W || rows != t.grid.H {
		t.grid = core.NewGrid[cell](cols, rows)
	}
}

// Cells returns the grid dimensions.
func (t *TermSurface) Cells() (cols, rows int) { return t.grid.W, t.grid.H }

// SetOpacity sets the layer opacity applied on Flush.
func (t *TermSurface) SetOpacity(v float64) { t.opacity = clamp01(v) }

// Clear resets every cell to transparent.
func (t *TermSurface) Clear() { t.grid.Clear() }

// Line samples the segment at half-cell intervals. Lines thinner than a
// cell contribute proportionally less coverage.
func (t *TermSurface) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	t.segment(x0, y0, x1, y1, width, c, c)
}

// GradientLine samples the segment, interpolating between the two colours.
func (t *TermSurface) GradientLine(x0, y0, x1, y1, width float64, from, to color.NRGBA) {
	t.segment(x0, y0, x1, y1, width, from, to)
}

func (t *TermSurface) segment(x0, y0, x1, y1, width float64, from, to color.NRGBA) {
	if from.A == 0 && to.A == 0 {
		return
	}
	step := math.Min(float64(t.CellW), float64(t.CellH)) / 2
	length := math.Hypot(x1-x0, y1-y0)
	n := int(math.Ceil(length/step)) + 1
	coverage := clamp01(width / float64(t.CellW))
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i < n; i++ {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		cx, cy := t.cellAt(x0+(x1-x0)*f, y0+(y1-y0)*f)
		if cx == lastX && cy == lastY {
			continue
		}
		lastX, lastY = cx, cy
		t.blend(cx, cy, gradientStop(from, to, f), coverage)
	}
}

// Circle marks the cells the disc covers, or the centre cell for discs
// smaller than a cell.
func (t *TermSurface) Circle(x, y, r float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	cx, cy := t.cellAt(x, y)
	rx := int(r / float64(t.CellW))
	ry := int(r / float64(t.CellH))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			t.blend(cx+dx, cy+dy, c, 1)
		}
	}
}

// Glow paints a halo falling off over blur units around a bright core.
func (t *TermSurface) Glow(x, y, r, blur float64, fill, halo color.NRGBA) {
	cx, cy := t.cellAt(x, y)
	rx := int(math.Ceil(blur / float64(t.CellW)))
	ry := int(math.Ceil(blur / float64(t.CellH)))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := math.Hypot(float64(dx*t.CellW), float64(dy*t.CellH))
			if d > blur {
				continue
			}
			t.blend(cx+dx, cy+dy, halo, 0.5*(1-d/blur))
		}
	}
	t.Circle(x, y, r, fill)
}

func (t *TermSurface) cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / float64(t.CellW))), int(math.Floor(y / float64(t.CellH)))
}

func (t *TermSurface) blend(cx, cy int, c color.NRGBA, coverage float64) {
	dst := t.grid.At(cx, cy)
	if dst == nil {
		return
	}
	a := float64(c.A) / 255 * coverage
	if a <= 0 {
		return
	}
	inv := 1 - a
	dst.r = float64(c.R)/255*a + dst.r*inv
	dst.g = float64(c.G)/255*a + dst.g*inv
	dst.b = float64(c.B)/255*a + dst.b*inv
	dst.a = a + dst.a*inv
}

// CellAt returns the composited colour and coverage of a cell.
func (t *TermSurface) CellAt(cx, cy int) (color.NRGBA, float64) {
	c := t.grid.At(cx, cy)
	if c == nil || c.a <= 0 {
		return color.NRGBA{}, 0
	}
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.r/c.a) * 255)),
		G: uint8(math.Round(clamp01(c.g/c.a) * 255)),
		B: uint8(math.Round(clamp01(c.b/c.a) * 255)),
		A: 255,
	}, c.a
}

// Flush writes the grid to screen. Cells are composited over the
// background colour at the layer opacity; coverage picks the glyph.
func (t *TermSurface) Flush(screen tcell.Screen) {
	bg := tcell.NewRGBColor(int32(t.bg.R), int32(t.bg.G), int32(t.bg.B))
	base := tcell.StyleDefault.Background(bg)
	for cy := 0; cy < t.grid.H; cy++ {
		for cx := 0; cx < t.grid.W; cx++ {
			c := t.grid.At(cx, cy)
			a := c.a * t.opacity
			idx := int(math.Round(math.Sqrt(clamp01(a)) * float64(len(shade)-1)))
			if idx <= 0 {
				screen.SetContent(cx, cy, ' ', nil, base)
				continue
			}
			fg, _ := t.CellAt(cx, cy)
			mixed := lerpNRGBA(t.bg, fg, math.Min(1, a*3))
			style := base.Foreground(tcell.NewRGBColor(int32(mixed.R), int32(mixed.G), int32(mixed.B)))
			screen.SetContent(cx, cy, shade[idx], nil, style)
		}
	}
}
