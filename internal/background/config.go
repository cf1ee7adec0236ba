package background

import "strconv"

// Config holds the population sizes and tunable geometry of the background.
type Config struct {
	Signals int
	Nodes   int

	GridSize           float64
	ConnectionDistance float64
	Overshoot          float64
	SpawnOffset        float64
	TailLength         float64
	TrailWidth         float64

	SpeedMin      float64
	SpeedMax      float64
	FavoredChance float64
	DotMin        float64
	DotMax        float64
	GlowBlur      float64

	NodeSpeed     float64
	NodeRadiusMin float64
	NodeRadiusMax float64
	LinkAlpha     float64

	Theme string
	Seed  int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Signals:            15,
		Nodes:              30,
		GridSize:           50,
		ConnectionDistance: 150,
		Overshoot:          200,
		SpawnOffset:        100,
		TailLength:         150,
		TrailWidth:         2,
		SpeedMin:           2,
		SpeedMax:           4,
		FavoredChance:      0.7,
		DotMin:             1,
		DotMax:             3,
		GlowBlur:           15,
		NodeSpeed:          0.5,
		NodeRadiusMin:      1,
		NodeRadiusMax:      2.5,
		LinkAlpha:          0.1,
		Theme:              DefaultTheme,
		Seed:               1337,
	}
}

// Keys lists every key understood by FromMap.
func Keys() []string {
	return []string{
		"signals", "nodes", "grid_size", "connection_distance", "overshoot",
		"spawn_offset", "tail_length", "trail_width", "speed_min", "speed_max",
		"favored_chance", "dot_min", "dot_max", "glow_blur", "node_speed",
		"node_radius_min", "node_radius_max", "link_alpha", "theme", "seed",
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt(cfg, "signals", &c.Signals, 0)
	setInt(cfg, "nodes", &c.Nodes, 0)

	setPositive(cfg, "grid_size", &c.GridSize)
	setPositive(cfg, "connection_distance", &c.ConnectionDistance)
	setNonNegative(cfg, "overshoot", &c.Overshoot)
	setNonNegative(cfg, "spawn_offset", &c.SpawnOffset)
	setNonNegative(cfg, "tail_length", &c.TailLength)
	setPositive(cfg, "trail_width", &c.TrailWidth)
	setPositive(cfg, "speed_min", &c.SpeedMin)
	setPositive(cfg, "speed_max", &c.SpeedMax)
	if c.SpeedMax < c.SpeedMin {
		c.SpeedMax = c.SpeedMin
	}
	if v, ok := cfg["favored_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.FavoredChance = parsed
		}
	}
	setPositive(cfg, "dot_min", &c.DotMin)
	setPositive(cfg, "dot_max", &c.DotMax)
	if c.DotMax < c.DotMin {
		c.DotMax = c.DotMin
	}
	setNonNegative(cfg, "glow_blur", &c.GlowBlur)
	setNonNegative(cfg, "node_speed", &c.NodeSpeed)
	setPositive(cfg, "node_radius_min", &c.NodeRadiusMin)
	setPositive(cfg, "node_radius_max", &c.NodeRadiusMax)
	if c.NodeRadiusMax < c.NodeRadiusMin {
		c.NodeRadiusMax = c.NodeRadiusMin
	}
	if v, ok := cfg["link_alpha"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.LinkAlpha = parsed
		}
	}
	if v, ok := cfg["theme"]; ok {
		if _, known := LookupTheme(v); known {
			c.Theme = v
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

func setInt(cfg map[string]string, key string, dst *int, min int) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
		*dst = parsed
	}
}

func setPositive(cfg map[string]string, key string, dst *float64) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
		*dst = parsed
	}
}

func setNonNegative(cfg map[string]string, key string, dst *float64) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
		*dst = parsed
	}
}
