package background

import (
	"image/color"
	"sort"
)

// DefaultTheme names the portfolio page palette: blue streaks with
// occasional emerald ones over an emerald neural mesh.
const DefaultTheme = "circuit"

// Theme is the palette used to draw one frame.
type Theme struct {
	// Primary is the favored signal hue, Accent the rarer one.
	Primary color.NRGBA
	Accent  color.NRGBA

	Head color.NRGBA
	Node color.NRGBA
	// Link is drawn with its alpha replaced by the distance-scaled opacity.
	Link       color.NRGBA
	Grid       color.NRGBA
	Background color.NRGBA
}

var themes = map[string]Theme{
	"circuit": {
		Primary:    color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255},
		Accent:     color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 255},
		Head:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Node:       color.NRGBA{R: 16, G: 185, B: 129, A: 77},
		Link:       color.NRGBA{R: 16, G: 185, B: 129, A: 255},
		Grid:       color.NRGBA{R: 255, G: 255, B: 255, A: 5},
		Background: color.NRGBA{R: 10, G: 10, B: 10, A: 255},
	},
	"amber": {
		Primary:    color.NRGBA{R: 255, G: 191, B: 0, A: 255},
		Accent:     color.NRGBA{R: 255, G: 120, B: 40, A: 255},
		Head:       color.NRGBA{R: 255, G: 240, B: 210, A: 255},
		Node:       color.NRGBA{R: 255, G: 165, B: 0, A: 77},
		Link:       color.NRGBA{R: 255, G: 165, B: 0, A: 255},
		Grid:       color.NRGBA{R: 255, G: 220, B: 160, A: 5},
		Background: color.NRGBA{R: 14, G: 10, B: 6, A: 255},
	},
	"matrix": {
		Primary:    color.NRGBA{R: 0, G: 255, B: 70, A: 255},
		Accent:     color.NRGBA{R: 0, G: 255, B: 255, A: 255},
		Head:       color.NRGBA{R: 220, G: 255, B: 220, A: 255},
		Node:       color.NRGBA{R: 0, G: 200, B: 60, A: 77},
		Link:       color.NRGBA{R: 0, G: 200, B: 60, A: 255},
		Grid:       color.NRGBA{R: 0, G: 255, B: 0, A: 5},
		Background: color.NRGBA{R: 0, G: 8, B: 0, A: 255},
	},
	"mono": {
		Primary:    color.NRGBA{R: 200, G: 200, B: 210, A: 255},
		Accent:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Head:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Node:       color.NRGBA{R: 180, G: 180, B: 190, A: 77},
		Link:       color.NRGBA{R: 180, G: 180, B: 190, A: 255},
		Grid:       color.NRGBA{R: 255, G: 255, B: 255, A: 5},
		Background: color.NRGBA{R: 12, G: 12, B: 14, A: 255},
	},
}

// LookupTheme returns the named palette.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the registered palettes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func themeFor(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha <= 0 {
		c.A = 0
		return c
	}
	if alpha >= 1 {
		c.A = 255
		return c
	}
	c.A = uint8(alpha*255 + 0.5)
	return c
}
