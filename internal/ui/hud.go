//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"backdrop/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Source is anything that can report a parameter snapshot. Sources that also
// implement the core setter interfaces get +/- buttons.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders a translucent parameter panel over the right edge of the view.
type HUD struct {
	src      Source
	width    int
	title    string
	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls    []hudControlState
	readouts    []core.Parameter
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	originX     int
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src Source, width int, title string) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, title: title}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.SetSource(src)
	return h
}

// SetSource rebinds the HUD, for example after the engine is remounted.
func (h *HUD) SetSource(src Source) {
	if h == nil {
		return
	}
	h.src = src
	h.controls = nil
	h.intSetter = nil
	h.floatSetter = nil
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	if setter, ok := src.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := src.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
}

// Width reports the panel width.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles clicks on the buttons.
// originX is the screen x of the panel's left edge.
func (h *HUD) Update(originX int) {
	if h == nil || h.src == nil {
		return
	}
	h.originX = originX
	h.snapshot = h.src.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at originX, spanning height pixels.
func (h *HUD) Draw(screen *ebiten.Image, originX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 12, G: 12, B: 16, A: 210})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(originX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	adjustable := map[string]bool{}
	for i := range h.controls {
		state := &h.controls[i]
		adjustable[state.control.Key] = true
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		default:
			state.hasValue = false
			state.value = "--"
		}
	}

	h.readouts = h.readouts[:0]
	for _, group := range h.snapshot.Groups {
		for _, param := range group.Params {
			if !adjustable[param.Key] {
				h.readouts = append(h.readouts, param)
			}
		}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.originX {
		return
	}
	px := mx - h.originX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	target, ok := h.target(state, direction)
	if !ok {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(target))
		if h.intSetter.SetIntParameter(state.control.Key, v) {
			state.intValue = v
			state.floatValue = float64(v)
			state.value = strconv.Itoa(v)
		}
	case core.ParamTypeFloat:
		if h.floatSetter.SetFloatParameter(state.control.Key, target) {
			state.floatValue = target
			state.value = formatFloat(state.control, target)
		}
	}
}

// target computes the value one step in direction, clamped to the control
// bounds. It reports false when the step would not change anything.
func (h *HUD) target(state *hudControlState, direction int) (float64, bool) {
	if state == nil || direction == 0 {
		return 0, false
	}
	current := state.floatValue
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		current = float64(state.intValue)
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
	default:
		return 0, false
	}
	target := state.control.Clamp(current + float64(direction)*state.control.Increment())
	if math.Abs(target-current) < 1e-9 {
		return 0, false
	}
	return target, true
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		_, minus := h.target(state, -1)
		_, plus := h.target(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minus)
		h.drawButton(state.plusRect, "+", state.hasValue && plus)
	}

	y := controlsTop + len(h.controls)*lineHeight + readoutGap
	for _, param := range h.readouts {
		text.Draw(h.panel, param.Label, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		bounds := text.BoundString(face, param.Value)
		text.Draw(h.panel, param.Value, face, h.width-panelPadding-bounds.Dx(), y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		y += readoutHeight
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Increment()
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	case step >= 1:
		precision = 0
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	readoutGap     = 20
	readoutHeight  = 18
	controlsTop    = panelPadding + headerBaseline + 14
)
