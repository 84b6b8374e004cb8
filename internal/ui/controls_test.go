package ui

import (
	"testing"

	"sandfall/internal/core"
)

func TestIntTargetClamps(t *testing.T) {
	state := &hudControlState{
		control:  core.ParameterControl{Type: core.ParamTypeInt, Step: 50, Min: 100, Max: 1000, HasMin: true, HasMax: true},
		intValue: 120,
	}
	if got := intTarget(state, -1); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if got := intTarget(state, 1); got != 170 {
		t.Fatalf("expected 170, got %d", got)
	}
	state.intValue = 1000
	if got := intTarget(state, 1); got != 1000 {
		t.Fatalf("expected clamp to 1000, got %d", got)
	}
}

func TestFloatTargetClamps(t *testing.T) {
	state := &hudControlState{
		control:    core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 1, HasMin: true, HasMax: true},
		floatValue: 0.95,
	}
	if got := floatTarget(state, 1); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
	state.floatValue = 0.1
	if got := floatTarget(state, -1); got != 0.1 {
		t.Fatalf("expected clamp to 0.1, got %v", got)
	}
}

func TestChoiceTargetWraps(t *testing.T) {
	state := &hudControlState{
		control:     core.ParameterControl{Type: core.ParamTypeChoice, Options: []string{"light", "dark", "rainbow"}},
		choiceIndex: 0,
	}
	if got, ok := choiceTarget(state, -1); !ok || got != 2 {
		t.Fatalf("expected wrap to 2, got %d %v", got, ok)
	}
	state.choiceIndex = 2
	if got, ok := choiceTarget(state, 1); !ok || got != 0 {
		t.Fatalf("expected wrap to 0, got %d %v", got, ok)
	}
	state.choiceIndex = -1
	if _, ok := choiceTarget(state, 1); ok {
		t.Fatal("unknown current value must not cycle")
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		step float64
		in   float64
		want string
	}{
		{0.1, 0.3, "0.3"},
		{0.05, 0.25, "0.25"},
		{10, 50, "50.0"},
	}
	for _, tc := range cases {
		if got := formatFloat(core.ParameterControl{Step: tc.step}, tc.in); got != tc.want {
			t.Fatalf("formatFloat(step=%v, %v) = %q, want %q", tc.step, tc.in, got, tc.want)
		}
	}
}
