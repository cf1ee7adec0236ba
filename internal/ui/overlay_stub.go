//go:build !ebiten

package ui

import "backdrop/internal/background"

// Subject mirrors the GUI build's overlay subject.
type Subject interface {
	Nodes() []background.Node
	Signals() []background.Signal
	Config() background.Config
	Frames() uint64
	LinkCount() int
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(Subject) *Overlay { return &Overlay{} }

// SetSubject is a no-op in headless builds.
func (o *Overlay) SetSubject(Subject) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
