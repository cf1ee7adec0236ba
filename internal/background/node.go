package background

import (
	"math"

	"backdrop/internal/core"
)

// Node is a drifting point of the ambient neural mesh. Nodes store no edges;
// connections are derived from pairwise distance every frame.
type Node struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

func newNode(cfg *Config, size core.Size, rng *core.RNG) Node {
	return Node{
		X:      rng.Float64() * float64(size.W),
		Y:      rng.Float64() * float64(size.H),
		VX:     (rng.Float64() - 0.5) * cfg.NodeSpeed,
		VY:     (rng.Float64() - 0.5) * cfg.NodeSpeed,
		Radius: rng.Range(cfg.NodeRadiusMin, cfg.NodeRadiusMax),
	}
}

// advance moves the node by its velocity and reflects the velocity on any
// axis where the position left [0, w] x [0, h]. The position is not clamped,
// so a node may sit up to one step outside before heading back. Only
// outward-moving components flip, which lets a node stranded outside by a
// shrinking resize walk back in.
func (n *Node) advance(w, h float64) {
	n.X += n.VX
	n.Y += n.VY
	if (n.X < 0 && n.VX < 0) || (n.X > w && n.VX > 0) {
		n.VX = -n.VX
	}
	if (n.Y < 0 && n.VY < 0) || (n.Y > h && n.VY > 0) {
		n.VY = -n.VY
	}
}

// Link reports whether a and b are connected under the given threshold and
// the opacity of the connecting line, scaled from maxAlpha when touching to 0
// at the threshold. The test is symmetric in a and b.
func Link(a, b Node, threshold, maxAlpha float64) (alpha float64, ok bool) {
	if threshold <= 0 {
		return 0, false
	}
	dist := math.Hypot(a.X-b.X, a.Y-b.Y)
	if dist >= threshold {
		return 0, false
	}
	return maxAlpha * (1 - dist/threshold), true
}
