//go:build ebiten

package render

import (
	"image/color"
	"math"

	"backdrop/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	gradientSegments = 16
	glowRings        = 4
)

// EbitenSurface draws into an offscreen image that is composited onto the
// screen as a single translucent layer.
type EbitenSurface struct {
	size  core.Size
	img   *ebiten.Image
	pixel *ebiten.Image
}

// NewEbitenSurface allocates a surface of the given size.
func NewEbitenSurface(size core.Size) *EbitenSurface {
	s := &EbitenSurface{pixel: ebiten.NewImage(1, 1)}
	s.pixel.Fill(color.White)
	s.Resize(size)
	return s
}

// Resize reallocates the offscreen image when the size changes.
func (s *EbitenSurface) Resize(size core.Size) {
	if s.img != nil && size == s.size {
		return
	}
	s.size = size
	w, h := size.W, size.H
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.img != nil {
		s.img.Dispose()
	}
	s.img = ebiten.NewImage(w, h)
}

// Clear erases the layer to transparent.
func (s *EbitenSurface) Clear() { s.img.Clear() }

// Line strokes a solid line using a stretched and rotated pixel.
func (s *EbitenSurface) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 || width <= 0 {
		return
	}
	dx := x1 - x0
	dy := y1 - y0
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, width)
	op.GeoM.Translate(0, -width/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x0, y0)
	a := float32(c.A) / 255
	op.ColorScale.Scale(float32(c.R)/255*a, float32(c.G)/255*a, float32(c.B)/255*a, a)
	s.img.DrawImage(s.pixel, op)
}

// GradientLine approximates a linear gradient with short solid segments.
func (s *EbitenSurface) GradientLine(x0, y0, x1, y1, width float64, from, to color.NRGBA) {
	for i := 0; i < gradientSegments; i++ {
		t0 := float64(i) / gradientSegments
		t1 := float64(i+1) / gradientSegments
		c := gradientStop(from, to, (t0+t1)/2)
		s.Line(x0+(x1-x0)*t0, y0+(y1-y0)*t0, x0+(x1-x0)*t1, y0+(y1-y0)*t1, width, c)
	}
}

// Circle fills an anti-aliased disc.
func (s *EbitenSurface) Circle(x, y, r float64, c color.NRGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

// Glow approximates a shadow blur with stacked translucent discs.
func (s *EbitenSurface) Glow(x, y, r, blur float64, fill, halo color.NRGBA) {
	if blur > 0 {
		ring := halo
		ring.A = uint8(float64(halo.A) * 0.12)
		for i := glowRings; i >= 1; i-- {
			s.Circle(x, y, r+blur*float64(i)/glowRings, ring)
		}
	}
	s.Circle(x, y, r, fill)
}

// Present composites the layer onto screen at the given opacity.
func (s *EbitenSurface) Present(screen *ebiten.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(clamp01(opacity)))
	screen.DrawImage(s.img, op)
}
