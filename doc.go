// Package sdr renders soft-edged alpha masks that drive variable-intensity
// blur and fade effects over rectangular UI surfaces.
//
// # Overview
//
// sdr generates single-channel rasters from closed-form signed distance
// fields (SDFs) for rounded rectangles and superellipse ("squircle")
// shapes, plus simple axial gradient ramps. A distance-to-opacity transfer
// stage with plateau and fade control shapes the transition, and a keyed
// cache guarantees that a raster is computed at most once per distinct
// configuration.
//
// # Quick Start
//
//	import sdr "github.com/Aemi-Studio/AemiSDR"
//
//	engine := sdr.NewEngine()
//	mask, err := engine.Mask(sdr.Config{
//	    Kind:   sdr.KindEasedRoundedRect,
//	    Width:  320,
//	    Height: 240,
//	    Scale:  2,
//	    Shape:  sdr.ShapeParams{CornerRadius: 24, FadeWidth: 32},
//	})
//	if err != nil {
//	    // degenerate geometry; keep the previous mask
//	}
//	_ = mask.ToImage() // *image.Alpha for the compositor
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Config, Raster, MaskKind, the SDF and transfer
//     functions
//   - cache/: sharded keyed store owning generated rasters
//   - gpu/: optional wgpu compute path evaluating the same kernels on GPU
//
// # Coordinate System
//
// Shape evaluation uses center-relative coordinates: the origin sits at the
// raster center, X increases right, Y increases down. Distances are negative
// inside a shape, zero on its boundary, and positive outside. All linear
// shape parameters are expressed in logical units and multiplied by the
// device pixel scale before evaluation, so rasters are generated at native
// pixel resolution.
//
// # Concurrency
//
// The SDF and transfer functions are pure and allocation-free. Raster
// generation is synchronous; the Engine serializes concurrent requests for
// the same key so the generator runs at most once per fingerprint, while
// requests for different keys proceed independently.
package sdr

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
