package background

import (
	"strconv"

	"backdrop/internal/core"
)

// Parameters captures the engine configuration for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	c := e.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name:    "Population",
			Summary: "Fixed for the lifetime of the engine.",
			Params: []core.Parameter{
				core.IntParam("signals", "Signals", len(e.signals), "Travelling pulses on grid lines"),
				core.IntParam("nodes", "Nodes", len(e.nodes), "Drifting mesh points"),
				core.IntParam("seed", "Seed", int(c.Seed), "Seed used for the last reset"),
			},
		},
		{
			Name: "Geometry",
			Params: []core.Parameter{
				core.FloatParam("grid_size", "Grid", c.GridSize, "Grid spacing; signal lines snap to it"),
				core.FloatParam("connection_distance", "Link dist", c.ConnectionDistance, "Maximum node distance for a link"),
				core.FloatParam("overshoot", "Overshoot", c.Overshoot, "Travel past the surface edge before a signal resets"),
				core.FloatParam("tail_length", "Tail", c.TailLength, "Trail length behind a signal head"),
			},
		},
		{
			Name: "Appearance",
			Params: []core.Parameter{
				core.FloatParam("link_alpha", "Link alpha", c.LinkAlpha, "Opacity of a link between touching nodes"),
				core.FloatParam("glow_blur", "Glow", c.GlowBlur, "Halo radius around signal heads"),
				{Key: "theme", Label: "Theme", Type: core.ParamTypeString, Value: c.Theme},
				{Key: "size", Label: "Surface", Type: core.ParamTypeString, Value: strconv.Itoa(e.size.W) + "x" + strconv.Itoa(e.size.H)},
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust while running.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
		{Key: "grid_size", Label: "Grid", Type: core.ParamTypeFloat, Step: 5, Min: 10, HasMin: true, Max: 200, HasMax: true},
		{Key: "connection_distance", Label: "Link dist", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true, Max: 400, HasMax: true},
		{Key: "overshoot", Label: "Overshoot", Type: core.ParamTypeFloat, Step: 25, Min: 0, HasMin: true},
		{Key: "tail_length", Label: "Tail", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true, Max: 600, HasMax: true},
		{Key: "link_alpha", Label: "Link alpha", Type: core.ParamTypeFloat, Step: 0.02, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "glow_blur", Label: "Glow", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true, Max: 40, HasMax: true},
	}
}

// SetIntParameter applies an integer control. Changing the seed reseeds the
// existing entities in place; population sizes cannot change.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "seed":
		e.cfg.Seed = int64(value)
		e.Reset(e.cfg.Seed)
		return true
	}
	return false
}

// SetFloatParameter applies a geometry or appearance control.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "grid_size":
		if value <= 0 {
			return false
		}
		e.cfg.GridSize = value
	case "connection_distance":
		if value < 0 {
			return false
		}
		e.cfg.ConnectionDistance = value
	case "overshoot":
		if value < 0 {
			return false
		}
		e.cfg.Overshoot = value
	case "tail_length":
		if value < 0 {
			return false
		}
		e.cfg.TailLength = value
	case "link_alpha":
		if value < 0 || value > 1 {
			return false
		}
		e.cfg.LinkAlpha = value
	case "glow_blur":
		if value < 0 {
			return false
		}
		e.cfg.GlowBlur = value
	default:
		return false
	}
	return true
}
