package render

import (
	"fmt"
	"image/color"
	"math"
)

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	return color.NRGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// gradientStop picks the colour at t along a two-stop gradient. A fully
// transparent stop only contributes alpha, like a canvas "transparent" stop
// fading into a colour.
func gradientStop(from, to color.NRGBA, t float64) color.NRGBA {
	if from.A == 0 {
		from.R, from.G, from.B = to.R, to.G, to.B
	}
	if to.A == 0 {
		to.R, to.G, to.B = from.R, from.G, from.B
	}
	return lerpNRGBA(from, to, t)
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

// cssColor formats c the way a 2D canvas style string expects it.
func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
