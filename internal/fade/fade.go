// Package fade eases the opacity of the background layer with a critically
// damped spring.
package fade

import "github.com/charmbracelet/harmonica"

const (
	frequency = 4.0
	damping   = 1.0
	settled   = 1e-3
)

// Fader moves an opacity value toward a target one frame at a time.
type Fader struct {
	spring harmonica.Spring
	value  float64
	vel    float64
	target float64
}

// New returns a fader stepping at fps frames per second, starting at from.
func New(fps int, from, target float64) *Fader {
	if fps <= 0 {
		fps = 60
	}
	return &Fader{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		value:  clamp01(from),
		target: clamp01(target),
	}
}

// SetTarget changes the opacity the fader heads toward.
func (f *Fader) SetTarget(target float64) { f.target = clamp01(target) }

// Target returns the current target opacity.
func (f *Fader) Target() float64 { return f.target }

// Value returns the current opacity without stepping.
func (f *Fader) Value() float64 { return f.value }

// Done reports whether the value has settled on the target.
func (f *Fader) Done() bool {
	d := f.value - f.target
	return d < settled && d > -settled && f.vel < settled && f.vel > -settled
}

// Step advances the spring by one frame and returns the new opacity.
func (f *Fader) Step() float64 {
	if f.Done() {
		f.value, f.vel = f.target, 0
		return f.value
	}
	f.value, f.vel = f.spring.Update(f.value, f.vel, f.target)
	f.value = clamp01(f.value)
	return f.value
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
