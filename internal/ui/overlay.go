//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"backdrop/internal/background"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Subject is the engine state the overlay inspects.
type Subject interface {
	Nodes() []background.Node
	Signals() []background.Signal
	Config() background.Config
	Frames() uint64
	LinkCount() int
}

// Overlay draws optional debugging visuals on top of the background.
type Overlay struct {
	subject    Subject
	showVel    bool
	showRadius bool
	showStats  bool
	pixel      *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(subject Subject) *Overlay {
	o := &Overlay{subject: subject}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetSubject rebinds the overlay after a remount.
func (o *Overlay) SetSubject(subject Subject) { o.subject = subject }

// Update toggles the visuals: 1 node velocities, 2 link radii, 3 stats.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVel = !o.showVel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showRadius = !o.showRadius
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled visuals onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.subject == nil {
		return
	}
	nodes := o.subject.Nodes()
	cfg := o.subject.Config()
	if o.showRadius {
		// Rings of half the link distance overlap exactly when two nodes link.
		r := float32(cfg.ConnectionDistance / 2)
		for _, n := range nodes {
			vector.StrokeCircle(screen, float32(n.X), float32(n.Y), r, 1, color.RGBA{R: 80, G: 80, B: 96, A: 80}, true)
		}
	}
	if o.showVel {
		for _, n := range nodes {
			o.drawArrow(screen, n.X, n.Y, n.VX, n.VY, cfg.NodeSpeed)
		}
	}
	if o.showStats {
		msg := fmt.Sprintf("frame %d  fps %.0f  signals %d  nodes %d  links %d",
			o.subject.Frames(), ebiten.ActualFPS(), len(o.subject.Signals()), len(nodes), o.subject.LinkCount())
		text.Draw(screen, msg, basicfont.Face7x13, 8, 18, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	}
}

// drawArrow draws a velocity arrow whose length grows with speed relative to
// the configured node speed.
func (o *Overlay) drawArrow(screen *ebiten.Image, x, y, vx, vy, maxSpeed float64) {
	const (
		minLength = 6
		maxLength = 24
		headAngle = math.Pi / 6
	)
	speed := math.Hypot(vx, vy)
	if speed < 1e-6 {
		o.drawLine(screen, x-1, y, x+1, y, 2, color.RGBA{R: 90, G: 130, B: 170, A: 120})
		return
	}
	norm := 1.0
	if maxSpeed > 0 {
		norm = math.Min(1, speed/(maxSpeed*0.5*math.Sqrt2))
	}
	length := minLength + (maxLength-minLength)*math.Sqrt(norm)
	nx, ny := vx/speed, vy/speed
	tipX, tipY := x+nx*length, y+ny*length
	col := color.RGBA{R: 240, G: 200, B: 80, A: 180}
	o.drawLine(screen, x, y, tipX, tipY, 1, col)

	head := length * 0.3
	angle := math.Atan2(ny, nx)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, 1, col)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, 1, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
