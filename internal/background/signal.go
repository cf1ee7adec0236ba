package background

import (
	"image/color"
	"math"

	"backdrop/internal/core"
)

// Orientation is the axis a signal travels along.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Signal is a light pulse travelling along one grid line.
type Signal struct {
	Orientation Orientation
	// Line is the grid-aligned coordinate on the perpendicular axis.
	Line float64
	// Progress is the distance travelled since the last reset.
	Progress float64
	Speed    float64
	Color    color.NRGBA
	Radius   float64
}

// advance moves the signal by its speed. Once the progress passes the travel
// bound (extent + overshoot) the signal is reset in the same step, so it is
// never observed past the bound. It reports whether a reset happened.
func (s *Signal) advance(extent float64, cfg *Config, theme *Theme, size core.Size, rng *core.RNG) bool {
	s.Progress += s.Speed
	if s.Progress > extent+cfg.Overshoot {
		s.reset(cfg, theme, size, rng)
		return true
	}
	return false
}

func (s *Signal) reset(cfg *Config, theme *Theme, size core.Size, rng *core.RNG) {
	s.Orientation = Horizontal
	perpendicular := float64(size.H)
	if rng.Bool() {
		s.Orientation = Vertical
		perpendicular = float64(size.W)
	}
	s.Line = 0
	if cfg.GridSize > 0 && perpendicular > 0 {
		s.Line = math.Floor(rng.Float64()*(perpendicular/cfg.GridSize)) * cfg.GridSize
	}
	s.Speed = rng.Range(cfg.SpeedMin, cfg.SpeedMax)
	s.Progress = 0
	s.Color = theme.Accent
	if rng.Chance(cfg.FavoredChance) {
		s.Color = theme.Primary
	}
	s.Radius = rng.Range(cfg.DotMin, cfg.DotMax)
}

// Extent returns the surface length along the signal's travel axis.
func (s *Signal) Extent(size core.Size) float64 {
	if s.Orientation == Vertical {
		return float64(size.H)
	}
	return float64(size.W)
}

// Head returns the position of the signal's leading dot. Signals enter from
// spawnOffset units before the surface edge.
func (s *Signal) Head(spawnOffset float64) (x, y float64) {
	along := s.Progress - spawnOffset
	if s.Orientation == Vertical {
		return s.Line, along
	}
	return along, s.Line
}

func (s *Signal) draw(dst core.Surface, cfg *Config, theme *Theme) {
	hx, hy := s.Head(cfg.SpawnOffset)
	tx, ty := hx-cfg.TailLength, hy
	if s.Orientation == Vertical {
		tx, ty = hx, hy-cfg.TailLength
	}
	transparent := s.Color
	transparent.A = 0
	dst.GradientLine(tx, ty, hx, hy, cfg.TrailWidth, transparent, s.Color)
	dst.Glow(hx, hy, s.Radius, cfg.GlowBlur, theme.Head, s.Color)
}
