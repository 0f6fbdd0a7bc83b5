package sdr

import (
	"fmt"
	"math"
)

// Generator produces a raster for a mask configuration. The Engine uses a
// Generator on cache miss; implementations must either complete and return
// a full raster or fail outright, never a partial buffer.
//
// CPUGenerator is the reference implementation; the gpu package provides a
// compute-shader implementation of the same kernels.
type Generator interface {
	Generate(cfg Config) (*Raster, error)
}

// CPUGenerator evaluates the mask kernels on the CPU. It is stateless and
// safe for concurrent use.
type CPUGenerator struct{}

// Compile-time interface check.
var _ Generator = CPUGenerator{}

// Generate implements Generator.
func (CPUGenerator) Generate(cfg Config) (*Raster, error) {
	return Generate(cfg)
}

// Generate evaluates the configured mask kernel over every pixel center of
// the target surface and returns the resulting alpha raster.
//
// Pixel centers are mapped to shape-local center-relative coordinates, and
// all linear shape parameters (corner radius, fade width, plateau width) are
// multiplied by the device pixel scale first, so the raster comes out at
// native pixel resolution.
//
// Degenerate dimensions (pixel width or height <= 0) fail fast with
// ErrInvalidDimensions rather than producing an empty buffer.
func Generate(cfg Config) (*Raster, error) {
	w, h := cfg.pixelSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	data := make([]uint8, w*h)

	// Dispatch on the kind once per raster, not per pixel.
	switch cfg.Kind {
	case KindLinearTopBottom, KindEasedLinear:
		fillLinear(data, w, h, cfg.Shape.Offset, false, cfg.Kind.Eased())
	case KindLinearBottomTop:
		fillLinear(data, w, h, cfg.Shape.Offset, true, false)
	case KindRoundedRect, KindEasedRoundedRect, KindSuperellipse, KindEasedSuperellipse:
		fillShaped(data, w, h, cfg)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, cfg.Kind)
	}

	return newRaster(w, h, cfg.scale(), data), nil
}

// fillLinear writes an axial ramp: fully opaque at the leading edge, fading
// across the span that starts at the normalized offset. The ramp value is
// constant per row, so it is computed once and replicated.
func fillLinear(data []uint8, w, h int, offset float64, bottomTop, eased bool) {
	denom := 1 - offset
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		if bottomTop {
			v = 1 - v
		}
		var t float64
		if denom <= 0 {
			if v >= offset {
				t = 1
			}
		} else {
			t = clamp((v-offset)/denom, 0, 1)
		}
		if eased {
			t = smoothstep(t)
		}
		alpha := quantizeAlpha(1 - t)
		row := data[y*w : y*w+w]
		for x := range row {
			row[x] = alpha
		}
	}
}

// fillShaped writes an SDF-driven mask: per-pixel signed distance through
// the distance-to-alpha transfer. All lengths are pre-scaled to device
// pixels here.
func fillShaped(data []uint8, w, h int, cfg Config) {
	s := cfg.scale()
	half := Pt(float64(w)/2, float64(h)/2)
	radius := cfg.Shape.CornerRadius * s
	fade := cfg.Shape.FadeWidth * s
	plateau := cfg.Shape.PlateauWidth * s
	eased := cfg.Kind.Eased()

	exponent := cfg.Shape.Exponent
	if exponent < 1 {
		exponent = defaultExponent
	}
	super := cfg.Kind.Superellipse()

	for y := 0; y < h; y++ {
		py := float64(y) + 0.5 - half.Y
		row := data[y*w : y*w+w]
		for x := range row {
			px := float64(x) + 0.5 - half.X
			var dist float64
			if super {
				dist = SuperellipseDistance(Pt(px, py), half, radius, exponent)
			} else {
				dist = RoundedRectDistance(Pt(px, py), half, radius)
			}
			row[x] = quantizeAlpha(rampAlpha(dist, plateau, fade, eased))
		}
	}
}

// quantizeAlpha converts a transfer result in [0, 1] to an 8-bit alpha value.
func quantizeAlpha(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 1) * 255))
}
