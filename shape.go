package sdr

import (
	"fmt"
	"math"
)

// MaskKind identifies the mask variant a raster is generated from.
// The set is closed: the generator dispatches on it once per raster,
// never per pixel.
type MaskKind int

const (
	// KindLinearTopBottom is a vertical ramp, opaque at the top edge and
	// fading toward the bottom, starting at the normalized Offset.
	KindLinearTopBottom MaskKind = iota

	// KindLinearBottomTop mirrors KindLinearTopBottom: opaque at the bottom.
	KindLinearBottomTop

	// KindEasedLinear is KindLinearTopBottom with a Hermite-eased ramp
	// instead of the raw linear one.
	KindEasedLinear

	// KindRoundedRect fades along the rounded-rectangle SDF with a raw
	// linear ramp.
	KindRoundedRect

	// KindEasedRoundedRect fades along the rounded-rectangle SDF with the
	// Hermite transfer.
	KindEasedRoundedRect

	// KindSuperellipse fades along the superellipse SDF with a raw linear
	// ramp.
	KindSuperellipse

	// KindEasedSuperellipse fades along the superellipse SDF with the
	// Hermite transfer.
	KindEasedSuperellipse
)

// String returns a human-readable name for the kind.
func (k MaskKind) String() string {
	switch k {
	case KindLinearTopBottom:
		return "linear-top-bottom"
	case KindLinearBottomTop:
		return "linear-bottom-top"
	case KindEasedLinear:
		return "eased-linear"
	case KindRoundedRect:
		return "rounded-rect"
	case KindEasedRoundedRect:
		return "eased-rounded-rect"
	case KindSuperellipse:
		return "superellipse"
	case KindEasedSuperellipse:
		return "eased-superellipse"
	default:
		return fmt.Sprintf("MaskKind(%d)", int(k))
	}
}

// Eased reports whether the kind applies the Hermite transfer instead of a
// raw linear ramp.
func (k MaskKind) Eased() bool {
	return k == KindEasedLinear || k == KindEasedRoundedRect || k == KindEasedSuperellipse
}

// Linear reports whether the kind is an axial ramp rather than a shape SDF.
func (k MaskKind) Linear() bool {
	return k == KindLinearTopBottom || k == KindLinearBottomTop || k == KindEasedLinear
}

// Superellipse reports whether the kind evaluates the superellipse SDF.
func (k MaskKind) Superellipse() bool {
	return k == KindSuperellipse || k == KindEasedSuperellipse
}

// defaultExponent is the superellipse exponent used when none is set.
// n=2 degenerates to circular corners.
const defaultExponent = 2

// ShapeParams holds the numeric mask parameters in logical units.
// The zero value is a sharp-cornered, hard-edged mask.
type ShapeParams struct {
	// CornerRadius is the corner radius. It is clamped to
	// [0, min(halfWidth, halfHeight)] at evaluation time.
	CornerRadius float64

	// Exponent is the superellipse exponent n (>= 1). Values below 1 are
	// treated as the default of 2. Ignored by non-superellipse kinds.
	Exponent float64

	// FadeWidth is the width of the opacity transition measured inward from
	// the shape boundary. Non-positive values produce a hard edge.
	FadeWidth float64

	// PlateauWidth extends the fully opaque region inward from the boundary
	// before the fade begins. Non-positive values disable the plateau.
	PlateauWidth float64

	// Offset is the normalized position in [0, 1) where a linear ramp
	// starts. Ignored by shaped kinds.
	Offset float64
}

// Config describes one mask request: the variant, the logical surface size,
// the device pixel scale, and the shape parameters. Configs are plain values
// constructed by the caller per layout pass.
type Config struct {
	Kind   MaskKind
	Width  float64 // logical units
	Height float64 // logical units
	Scale  float64 // device pixels per logical unit; <= 0 means 1
	Shape  ShapeParams
}

// scale returns the effective device pixel scale.
func (c Config) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// pixelSize returns the raster dimensions in device pixels.
func (c Config) pixelSize() (int, int) {
	s := c.scale()
	return int(math.Round(c.Width * s)), int(math.Round(c.Height * s))
}

// RasterKey is the fingerprint of a generated raster: the mask kind, every
// numeric parameter, the pixel dimensions, and the device scale. Two equal
// keys always describe pixel-identical rasters; equality is defined purely
// over the key fields, never over raster content.
type RasterKey struct {
	Kind         MaskKind
	PixelWidth   int
	PixelHeight  int
	Scale        float64
	CornerRadius float64
	Exponent     float64
	FadeWidth    float64
	PlateauWidth float64
	Offset       float64
}

// Key derives the raster fingerprint for the configuration. The derivation
// is deterministic: equal configurations always produce equal keys.
func (c Config) Key() RasterKey {
	w, h := c.pixelSize()
	return RasterKey{
		Kind:         c.Kind,
		PixelWidth:   w,
		PixelHeight:  h,
		Scale:        c.scale(),
		CornerRadius: c.Shape.CornerRadius,
		Exponent:     c.Shape.Exponent,
		FadeWidth:    c.Shape.FadeWidth,
		PlateauWidth: c.Shape.PlateauWidth,
		Offset:       c.Shape.Offset,
	}
}

// KernelParams returns the positional parameter vector consumed by external
// per-pixel evaluation kernels:
//
//	[width, height, offsetOrRadius, axisOrFadeWidth, optionalExponent]
//
// Linear kinds carry the normalized ramp offset and the axis direction
// (0 top→bottom, 1 bottom→top). Shaped kinds carry the corner radius and
// fade width pre-multiplied by the device scale, plus the superellipse
// exponent (0 for circular corners). Units match exactly what the generator
// uses to key its cache.
func (c Config) KernelParams() [5]float64 {
	w, h := c.pixelSize()
	if c.Kind.Linear() {
		axis := 0.0
		if c.Kind == KindLinearBottomTop {
			axis = 1
		}
		return [5]float64{float64(w), float64(h), c.Shape.Offset, axis, 0}
	}
	s := c.scale()
	exponent := 0.0
	if c.Kind.Superellipse() {
		exponent = c.Shape.Exponent
		if exponent < 1 {
			exponent = defaultExponent
		}
	}
	return [5]float64{
		float64(w), float64(h),
		c.Shape.CornerRadius * s,
		c.Shape.FadeWidth * s,
		exponent,
	}
}
