package sdr

import (
	"math"
	"testing"
)

func TestToAlphaEndpoints(t *testing.T) {
	for _, fade := range []float64{0.5, 1, 10, 250} {
		if got := ToAlpha(0, fade); got != 1 {
			t.Errorf("ToAlpha(0, %f) = %f, want exactly 1", fade, got)
		}
		if got := ToAlpha(-fade, fade); got != 0 {
			t.Errorf("ToAlpha(%f, %f) = %f, want exactly 0", -fade, fade, got)
		}
		if got := ToAlpha(-fade/2, fade); got != 0.5 {
			t.Errorf("ToAlpha(%f, %f) = %f, want 0.5", -fade/2, fade, got)
		}
	}
}

func TestToAlphaHardEdge(t *testing.T) {
	tests := []struct {
		name string
		fade float64
	}{
		{"zero fade", 0},
		{"negative fade", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAlpha(0, tt.fade); got != 1 {
				t.Errorf("boundary alpha = %f, want 1", got)
			}
			if got := ToAlpha(0.001, tt.fade); got != 1 {
				t.Errorf("outside alpha = %f, want 1", got)
			}
			if got := ToAlpha(-0.001, tt.fade); got != 0 {
				t.Errorf("interior alpha = %f, want 0", got)
			}
		})
	}
}

func TestToAlphaMonotonic(t *testing.T) {
	// Alpha must not decrease as distance grows from -fade toward 0.
	const fade = 10.0
	prev := -1.0
	for d := -fade - 2; d <= 2; d += 0.05 {
		curr := ToAlpha(d, fade)
		if curr < prev {
			t.Fatalf("alpha decreased at d=%f: prev=%f, curr=%f", d, prev, curr)
		}
		if curr < 0 || curr > 1 {
			t.Fatalf("alpha out of range at d=%f: %f", d, curr)
		}
		prev = curr
	}
}

func TestToAlphaSaturates(t *testing.T) {
	// Positive distances stay fully opaque, distances past the fade span
	// stay fully transparent.
	for _, d := range []float64{0.001, 1, 50, 1e6} {
		if got := ToAlpha(d, 10); got != 1 {
			t.Errorf("ToAlpha(%f, 10) = %f, want 1", d, got)
		}
		if got := ToAlpha(-10-d, 10); got != 0 {
			t.Errorf("ToAlpha(%f, 10) = %f, want 0", -10-d, got)
		}
	}
}

func TestPlateauZeroReducesToPlainTransfer(t *testing.T) {
	for _, fade := range []float64{0.5, 2, 10} {
		for d := -25.0; d <= 5.0; d += 0.25 {
			plain := ToAlpha(d, fade)
			plateau := ToAlphaWithPlateau(d, 0, fade)
			if plain != plateau {
				t.Fatalf("d=%f fade=%f: ToAlpha=%f, ToAlphaWithPlateau(p=0)=%f",
					d, fade, plain, plateau)
			}
		}
	}
}

func TestToAlphaWithPlateau(t *testing.T) {
	const plateau, fade = 5.0, 10.0
	tests := []struct {
		name string
		dist float64
		want float64
	}{
		{"boundary", 0, 1},
		{"inside plateau", -3, 1},
		{"plateau edge", -plateau, 1},
		{"fade midpoint", -plateau - fade/2, 0.5},
		{"fade end", -plateau - fade, 0},
		{"deep interior", -plateau - fade - 100, 0},
		{"outside", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAlphaWithPlateau(tt.dist, plateau, fade)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("alpha at dist %f = %f, want %f", tt.dist, got, tt.want)
			}
		})
	}
}

func TestToAlphaWithPlateauHardEdge(t *testing.T) {
	// Both widths non-positive degenerates to a binary mask.
	if got := ToAlphaWithPlateau(1, 0, 0); got != 1 {
		t.Errorf("boundary-side alpha = %f, want 1", got)
	}
	if got := ToAlphaWithPlateau(-1, 0, 0); got != 0 {
		t.Errorf("interior alpha = %f, want 0", got)
	}
	// Plateau without fade cuts off sharply past the plateau.
	if got := ToAlphaWithPlateau(-4, 5, 0); got != 1 {
		t.Errorf("plateau alpha = %f, want 1", got)
	}
	if got := ToAlphaWithPlateau(-6, 5, 0); got != 0 {
		t.Errorf("past-plateau alpha = %f, want 0", got)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{0.25, 0.15625},
		{0.75, 0.84375},
	}
	for _, tt := range tests {
		if got := smoothstep(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("smoothstep(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
