package pulse_test

import (
	"math"
	"testing"

	"github.com/oliverbestmann/triangle/pulse"
)

func TestColor_ZeroValueIsWhite(t *testing.T) {
	var c pulse.Color
	if c != pulse.ColorWhite {
		t.Fatalf("zero color should be opaque white")
	}
}

func TestColorSRGBA(t *testing.T) {
	r, g, b, a := pulse.ColorSRGBA(1, 0.5, 0, 0.25).Components()

	if r != 1 || b != 0 || a != 0.25 {
		t.Fatalf("unexpected components %v %v %v %v", r, g, b, a)
	}

	// srgb 0.5 is about 0.214 in linear space
	if math.Abs(float64(g)-0.214) > 0.001 {
		t.Fatalf("unexpected linear green %v", g)
	}
}

func TestColor_WithAlpha(t *testing.T) {
	c := pulse.ColorBlack.WithAlpha(0.5)

	if c.Alpha() != 0.5 {
		t.Fatalf("unexpected alpha %v", c.Alpha())
	}

	if r, g, b, _ := c.Components(); r != 0 || g != 0 || b != 0 {
		t.Fatalf("rgb must not change")
	}
}
