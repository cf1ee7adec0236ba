package core

import "image/color"

// Size describes the dimensions of a drawing surface in surface units.
type Size struct {
	W int
	H int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Max returns the larger of the two dimensions.
func (s Size) Max() int {
	if s.W > s.H {
		return s.W
	}
	return s.H
}

// Surface is the drawing context an animation renders into. Implementations
// own their pixel storage and must accept any size, including zero.
type Surface interface {
	Resize(size Size)
	Clear()
	Line(x0, y0, x1, y1, width float64, c color.NRGBA)
	// GradientLine strokes a line whose color runs linearly from `from` at
	// (x0, y0) to `to` at (x1, y1).
	GradientLine(x0, y0, x1, y1, width float64, from, to color.NRGBA)
	Circle(x, y, r float64, c color.NRGBA)
	// Glow fills a circle and surrounds it with a soft halo of the given blur radius.
	Glow(x, y, r, blur float64, fill, halo color.NRGBA)
}

// NopSurface discards every drawing operation.
type NopSurface struct{}

func (NopSurface) Resize(Size) {}
func (NopSurface) Clear() {}
func (NopSurface) Line(_, _, _, _, _ float64, _ color.NRGBA) {}
func (NopSurface) GradientLine(_, _, _, _, _ float64, _, _ color.NRGBA) {}
func (NopSurface) Circle(_, _, _ float64, _ color.NRGBA) {}
func (NopSurface) Glow(_, _, _, _ float64, _, _ color.NRGBA) {}
