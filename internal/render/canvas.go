package render

import (
	"image"
	"image/color"
	"math"

	"backdrop/internal/core"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// CanvasSurface renders through an HTML5-style 2D canvas on the pure-Go
// software backend, so frames can be produced without a display.
type CanvasSurface struct {
	size    core.Size
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
}

// NewCanvasSurface allocates a canvas of the given size.
func NewCanvasSurface(size core.Size) *CanvasSurface {
	s := &CanvasSurface{}
	s.Resize(size)
	return s
}

// Resize reallocates the backing image when the size changes. The canvas
// contents are discarded, as with a browser canvas.
func (s *CanvasSurface) Resize(size core.Size) {
	if s.cv != nil && size == s.size {
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
	s.backend = softwarebackend.New(w, h)
	s.cv = canvas.New(s.backend)
}

// Size returns the logical surface size.
func (s *CanvasSurface) Size() core.Size { return s.size }

// Clear erases the whole canvas to transparent.
func (s *CanvasSurface) Clear() {
	s.cv.ClearRect(0, 0, float64(s.cv.Width()), float64(s.cv.Height()))
}

// Line strokes a solid line.
func (s *CanvasSurface) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	s.cv.SetStrokeStyle(cssColor(c))
	s.stroke(x0, y0, x1, y1, width)
}

// GradientLine strokes a line with a linear gradient between its endpoints.
func (s *CanvasSurface) GradientLine(x0, y0, x1, y1, width float64, from, to color.NRGBA) {
	g := s.cv.CreateLinearGradient(x0, y0, x1, y1)
	g.AddColorStop(0, cssColor(gradientStop(from, to, 0)))
	g.AddColorStop(1, cssColor(gradientStop(from, to, 1)))
	s.cv.SetStrokeStyle(g)
	s.stroke(x0, y0, x1, y1, width)
}

func (s *CanvasSurface) stroke(x0, y0, x1, y1, width float64) {
	s.cv.SetLineWidth(width)
	s.cv.BeginPath()
	s.cv.MoveTo(x0, y0)
	s.cv.LineTo(x1, y1)
	s.cv.Stroke()
}

// Circle fills a disc.
func (s *CanvasSurface) Circle(x, y, r float64, c color.NRGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	s.cv.SetFillStyle(cssColor(c))
	s.cv.BeginPath()
	s.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	s.cv.Fill()
}

// Glow fills a disc with a shadow blur in the halo colour.
func (s *CanvasSurface) Glow(x, y, r, blur float64, fill, halo color.NRGBA) {
	s.cv.SetShadowBlur(blur)
	s.cv.SetShadowColor(cssColor(halo))
	s.Circle(x, y, r, fill)
	s.cv.SetShadowBlur(0)
}

// Image returns the rendered frame. The image is owned by the surface and
// is replaced on resize.
func (s *CanvasSurface) Image() *image.RGBA { return s.backend.Image }
