package app

import (
	"errors"

	"backdrop/internal/core"
	"backdrop/internal/frame"
)

// ErrNoSurface is returned by Host.Surface when no surface is attached.
var ErrNoSurface = errors.New("app: no surface attached")

// Host binds a frame loop to a drawing surface; a background.Engine mounts
// on it. The loop supplies scheduling, resize events and the viewport.
type Host struct {
	*frame.Loop
	surface core.Surface
}

// NewHost returns a host drawing onto surface. A nil surface makes every
// mount fail, which leaves the page without a background.
func NewHost(loop *frame.Loop, surface core.Surface) *Host {
	return &Host{Loop: loop, surface: surface}
}

// Surface returns the attached surface.
func (h *Host) Surface() (core.Surface, error) {
	if h.surface == nil {
		return nil, ErrNoSurface
	}
	return h.surface, nil
}
