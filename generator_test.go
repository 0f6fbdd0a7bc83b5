package sdr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Kind: KindRoundedRect, Width: 0, Height: 100}},
		{"zero height", Config{Kind: KindRoundedRect, Width: 100, Height: 0}},
		{"negative width", Config{Kind: KindRoundedRect, Width: -10, Height: 100}},
		{"rounds to zero", Config{Kind: KindRoundedRect, Width: 0.2, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Generate(tt.cfg)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("error = %v, want ErrInvalidDimensions", err)
			}
			if r != nil {
				t.Errorf("raster = %v, want nil", r)
			}
		})
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	r, err := Generate(Config{Kind: MaskKind(99), Width: 10, Height: 10})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("error = %v, want ErrUnknownKind", err)
	}
	if r != nil {
		t.Errorf("raster = %v, want nil", r)
	}
}

func TestGenerateScale(t *testing.T) {
	r, err := Generate(Config{Kind: KindLinearTopBottom, Width: 50, Height: 40, Scale: 2})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.Width() != 100 || r.Height() != 80 {
		t.Errorf("size = %dx%d, want 100x80", r.Width(), r.Height())
	}
	if r.Scale() != 2 {
		t.Errorf("Scale() = %f, want 2", r.Scale())
	}
}

func TestLinearTopBottomRamp(t *testing.T) {
	r, err := Generate(Config{Kind: KindLinearTopBottom, Width: 4, Height: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := r.At(0, 0); got < 250 {
		t.Errorf("top row alpha = %d, want near-opaque", got)
	}
	if got := r.At(0, 99); got > 5 {
		t.Errorf("bottom row alpha = %d, want near-transparent", got)
	}
	// Rows are constant and the ramp never increases downward.
	prev := r.At(0, 0)
	for y := 0; y < 100; y++ {
		row := r.At(0, y)
		for x := 1; x < 4; x++ {
			if r.At(x, y) != row {
				t.Fatalf("row %d not constant: At(%d) = %d, At(0) = %d", y, x, r.At(x, y), row)
			}
		}
		if row > prev {
			t.Fatalf("ramp increased at row %d: %d > %d", y, row, prev)
		}
		prev = row
	}
}

func TestLinearBottomTopMirrors(t *testing.T) {
	top, err := Generate(Config{Kind: KindLinearTopBottom, Width: 2, Height: 64})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	bottom, err := Generate(Config{Kind: KindLinearBottomTop, Width: 2, Height: 64})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for y := 0; y < 64; y++ {
		if top.At(0, y) != bottom.At(0, 63-y) {
			t.Errorf("row %d: top-bottom %d != mirrored bottom-top %d",
				y, top.At(0, y), bottom.At(0, 63-y))
		}
	}
}

func TestLinearOffsetHoldsOpaqueRegion(t *testing.T) {
	r, err := Generate(Config{
		Kind: KindLinearTopBottom, Width: 2, Height: 100,
		Shape: ShapeParams{Offset: 0.5},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Everything above the offset stays fully opaque.
	for y := 0; y < 49; y++ {
		if got := r.At(0, y); got != 255 {
			t.Errorf("row %d alpha = %d, want 255 before the offset", y, got)
		}
	}
	if got := r.At(0, 99); got > 5 {
		t.Errorf("bottom row alpha = %d, want near-transparent", got)
	}
}

func TestEasedLinearDiffersFromLinear(t *testing.T) {
	lin, err := Generate(Config{Kind: KindLinearTopBottom, Width: 2, Height: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	eased, err := Generate(Config{Kind: KindEasedLinear, Width: 2, Height: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// The Hermite curve sits above the linear ramp in the first half.
	if lin.At(0, 25) >= eased.At(0, 25) {
		t.Errorf("quarter row: linear %d, eased %d, want eased above linear",
			lin.At(0, 25), eased.At(0, 25))
	}
}

func TestShapedMask(t *testing.T) {
	r, err := Generate(Config{
		Kind: KindEasedRoundedRect, Width: 100, Height: 100,
		Shape: ShapeParams{CornerRadius: 10, FadeWidth: 10},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Deep interior is past the fade span, the rim near the boundary is
	// close to opaque, and pixels outside the shape saturate fully opaque.
	if got := r.At(50, 50); got != 0 {
		t.Errorf("center alpha = %d, want 0", got)
	}
	if got := r.At(0, 50); got < 240 {
		t.Errorf("edge-adjacent alpha = %d, want near-opaque", got)
	}
	if got := r.At(0, 0); got != 255 {
		t.Errorf("outside-corner alpha = %d, want 255", got)
	}
}

func TestShapedHardEdge(t *testing.T) {
	r, err := Generate(Config{
		Kind: KindRoundedRect, Width: 60, Height: 60,
		Shape: ShapeParams{CornerRadius: 8},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Zero fade and plateau produce a binary mask.
	for _, d := range r.Data() {
		if d != 0 && d != 255 {
			t.Fatalf("hard-edge mask contains intermediate alpha %d", d)
		}
	}
	if got := r.At(30, 30); got != 0 {
		t.Errorf("interior alpha = %d, want 0", got)
	}
	if got := r.At(0, 0); got != 255 {
		t.Errorf("outside-corner alpha = %d, want 255", got)
	}
}

func TestSuperellipseN2MatchesRoundedRectRaster(t *testing.T) {
	shape := ShapeParams{CornerRadius: 12, FadeWidth: 8, Exponent: 2}
	rr, err := Generate(Config{Kind: KindEasedRoundedRect, Width: 80, Height: 60, Shape: shape})
	if err != nil {
		t.Fatalf("Generate rounded rect: %v", err)
	}
	se, err := Generate(Config{Kind: KindEasedSuperellipse, Width: 80, Height: 60, Shape: shape})
	if err != nil {
		t.Fatalf("Generate superellipse: %v", err)
	}
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			a, b := int(rr.At(x, y)), int(se.At(x, y))
			if diff := a - b; diff < -3 || diff > 3 {
				t.Fatalf("at (%d, %d): rounded-rect %d vs superellipse(n=2) %d", x, y, a, b)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{
		Kind: KindEasedSuperellipse, Width: 64, Height: 48, Scale: 2,
		Shape: ShapeParams{CornerRadius: 10, FadeWidth: 6, PlateauWidth: 2, Exponent: 4},
	}
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff(a.Data(), b.Data()); diff != "" {
		t.Errorf("repeated generation differs (-first +second):\n%s", diff)
	}
}

func TestCPUGeneratorImplementsGenerator(t *testing.T) {
	var gen Generator = CPUGenerator{}
	r, err := gen.Generate(Config{Kind: KindRoundedRect, Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.Width() != 10 || r.Height() != 10 {
		t.Errorf("size = %dx%d, want 10x10", r.Width(), r.Height())
	}
}

func BenchmarkGenerate(b *testing.B) {
	benchmarks := []struct {
		name string
		cfg  Config
	}{
		{"linear", Config{Kind: KindLinearTopBottom, Width: 400, Height: 300}},
		{"rounded-rect", Config{
			Kind: KindEasedRoundedRect, Width: 400, Height: 300,
			Shape: ShapeParams{CornerRadius: 24, FadeWidth: 16},
		}},
		{"superellipse", Config{
			Kind: KindEasedSuperellipse, Width: 400, Height: 300,
			Shape: ShapeParams{CornerRadius: 24, FadeWidth: 16, Exponent: 4},
		}},
	}
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Generate(bm.cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
