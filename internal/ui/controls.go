package ui

import (
	"image"
	"math"
	"strconv"

	"sandfall/internal/core"
)

// hudControlState is the cached value and layout of one HUD row.
type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue    int
	floatValue  float64
	choiceIndex int
	hasValue    bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// intTarget returns the value one step away in direction, clamped to the
// control's bounds.
func intTarget(state *hudControlState, direction int) int {
	step := int(math.Round(state.control.Step))
	if step <= 0 {
		step = 1
	}
	target := state.intValue + direction*step
	if state.control.HasMin {
		target = max(target, int(math.Round(state.control.Min)))
	}
	if state.control.HasMax {
		target = min(target, int(math.Round(state.control.Max)))
	}
	return target
}

func floatTarget(state *hudControlState, direction int) float64 {
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := state.floatValue + float64(direction)*step
	if state.control.HasMin && target < state.control.Min {
		target = state.control.Min
	}
	if state.control.HasMax && target > state.control.Max {
		target = state.control.Max
	}
	return target
}

// choiceTarget cycles through the options, wrapping at both ends.
func choiceTarget(state *hudControlState, direction int) (int, bool) {
	n := len(state.control.Options)
	if n < 2 || state.choiceIndex < 0 {
		return 0, false
	}
	return ((state.choiceIndex+direction)%n + n) % n, true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
