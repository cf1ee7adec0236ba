//go:build !ebiten

package ui

import "backdrop/internal/core"

// Source mirrors the GUI build's parameter source.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Source, int, string) *HUD { return nil }

// SetSource is a no-op in the headless build.
func (h *HUD) SetSource(Source) {}

// Width is always zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
