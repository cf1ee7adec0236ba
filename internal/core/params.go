package core

import (
	"math"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form values such as palette names.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single value exposed by an animation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// IntParam builds an integer Parameter.
func IntParam(key, label string, v int, desc string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v), Description: desc}
}

// FloatParam builds a floating point Parameter.
func FloatParam(key, label string, v float64, desc string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64), Description: desc}
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of values exposed by an animation.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl is a parameter the panel offers +/- buttons for. A zero
// Step selects the type's default increment.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Increment returns the step size, never zero. Integer steps are at least 1.
func (c ParameterControl) Increment() float64 {
	switch {
	case c.Type == ParamTypeInt:
		return math.Max(1, math.Round(c.Step))
	case c.Step > 0:
		return c.Step
	default:
		return 0.05
	}
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// ParameterControlsProvider lists the controls an animation accepts.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter applies an integer control; false means rejected.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter applies a float control; false means rejected.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}
