package sdr

// ToAlpha maps a signed distance to an opacity value in [0, 1] using a
// Hermite smoothstep fade of the given width.
//
// A non-positive fadeWidth yields a hard edge: 1 for dist >= 0, 0 otherwise.
// Otherwise the result is exactly 1 at dist = 0, exactly 0 at
// dist = -fadeWidth, and monotonically non-increasing as dist decreases.
func ToAlpha(dist, fadeWidth float64) float64 {
	if fadeWidth <= 0 {
		if dist >= 0 {
			return 1
		}
		return 0
	}
	return smoothstep(clamp(1+dist/fadeWidth, 0, 1))
}

// ToAlphaWithPlateau maps a signed distance to an opacity value in [0, 1],
// holding a fully opaque plateau that extends plateauWidth inside the
// boundary before the fade begins.
//
// With plateauWidth == 0 the result reduces exactly to ToAlpha. With both
// widths non-positive the hard-edge rule of ToAlpha applies. A non-positive
// fadeWidth with a positive plateau yields no fade tail: 0 beyond the
// plateau.
func ToAlphaWithPlateau(dist, plateauWidth, fadeWidth float64) float64 {
	if plateauWidth <= 0 && fadeWidth <= 0 {
		if dist >= 0 {
			return 1
		}
		return 0
	}
	shifted := dist + plateauWidth
	if shifted >= 0 {
		return 1
	}
	if fadeWidth <= 0 {
		return 0
	}
	return smoothstep(clamp(1+shifted/fadeWidth, 0, 1))
}

// smoothstep is the cubic Hermite easing t²(3−2t), producing a smooth 0→1
// transition with zero derivative at both ends. t must already be in [0, 1].
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// rampAlpha evaluates the transfer for one distance sample during raster
// generation. Non-eased kinds use the raw linear ramp, eased kinds the
// Hermite smoothstep. The plateau shift is applied before either ramp.
func rampAlpha(dist, plateauWidth, fadeWidth float64, eased bool) float64 {
	if eased {
		return ToAlphaWithPlateau(dist, plateauWidth, fadeWidth)
	}
	if plateauWidth <= 0 && fadeWidth <= 0 {
		if dist >= 0 {
			return 1
		}
		return 0
	}
	shifted := dist + plateauWidth
	if shifted >= 0 {
		return 1
	}
	if fadeWidth <= 0 {
		return 0
	}
	return clamp(1+shifted/fadeWidth, 0, 1)
}
