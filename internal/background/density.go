package background

import "backdrop/internal/core"

// Density summarises how busy a configuration looks over a headless run.
type Density struct {
	Frames      int
	MeanLinks   float64
	PeakLinks   int
	MeanVisible float64
}

// Measure advances a fresh engine for frames frames on an empty surface of
// the given size and reports link and signal visibility statistics.
func Measure(cfg Config, size core.Size, frames int) Density {
	e := New(cfg)
	e.Resize(size)
	e.Reset(cfg.Seed)

	var d Density
	var links, visible int
	for i := 0; i < frames; i++ {
		e.AdvanceFrame()
		n := e.LinkCount()
		links += n
		if n > d.PeakLinks {
			d.PeakLinks = n
		}
		visible += e.visibleSignals()
	}
	d.Frames = frames
	if frames > 0 {
		d.MeanLinks = float64(links) / float64(frames)
		d.MeanVisible = float64(visible) / float64(frames)
	}
	return d
}

// LinkCount returns the number of node pairs currently close enough to link.
func (e *Engine) LinkCount() int {
	n := 0
	for i := range e.nodes {
		for j := i + 1; j < len(e.nodes); j++ {
			if _, ok := Link(e.nodes[i], e.nodes[j], e.cfg.ConnectionDistance, e.cfg.LinkAlpha); ok {
				n++
			}
		}
	}
	return n
}

func (e *Engine) visibleSignals() int {
	n := 0
	for i := range e.signals {
		s := &e.signals[i]
		x, y := s.Head(e.cfg.SpawnOffset)
		if x >= 0 && y >= 0 && x <= float64(e.size.W) && y <= float64(e.size.H) {
			n++
		}
	}
	return n
}
