package sdr

import "math"

// powBaseFloor guards zero-base exponentiation in the superellipse corner
// term. Normalized corner coordinates below this floor are treated as the
// floor itself so math.Pow never sees a zero base with a fractional exponent.
const powBaseFloor = 1e-4

// RoundedRectDistance returns the signed distance from p to the boundary of
// an axis-aligned rounded rectangle centered at the origin. half holds the
// rectangle half-extents and radius the corner radius, which is clamped to
// [0, min(half.X, half.Y)].
//
// The result is negative inside the shape, zero on the boundary, and
// positive outside. The formula is exact for all points, including the
// interior and the corner-arc regions.
func RoundedRectDistance(p, half Point, radius float64) float64 {
	radius = clampRadius(radius, half)
	dx := math.Abs(p.X) - (half.X - radius)
	dy := math.Abs(p.Y) - (half.Y - radius)
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside - radius
}

// SuperellipseDistance returns the signed distance from p to the boundary of
// an axis-aligned superellipse-cornered rectangle centered at the origin.
// The exponent n controls corner roundness: n=2 reproduces circular corners
// (identical to RoundedRectDistance), larger n approaches a sharp corner
// with a flatter arc.
//
// The straight-edge region is exact. The corner region uses a first-order
// approximation of the Lp-norm distance that is exact only for n=2; the
// error for other exponents stays small near the boundary, which is the only
// region that drives a visible opacity transition.
func SuperellipseDistance(p, half Point, radius, n float64) float64 {
	radius = clampRadius(radius, half)
	dx := math.Abs(p.X) - math.Max(half.X-radius, 0)
	dy := math.Abs(p.Y) - math.Max(half.Y-radius, 0)

	if dx <= 0 && dy <= 0 {
		// Straight-edge region: exact.
		return math.Max(dx, dy) - radius
	}
	if radius <= 0 {
		// Degenerate sharp corner.
		return math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	}

	cornerX := math.Max(dx, 0) / radius
	cornerY := math.Max(dy, 0) / radius
	s := fastPow(math.Max(cornerX, powBaseFloor), n) +
		fastPow(math.Max(cornerY, powBaseFloor), n)

	// pow(s, 1/n)*radius measures the Lp distance from the corner center;
	// subtracting radius signs it against the arc. Valid both inside (s <= 1)
	// and outside (s > 1) the corner arc.
	return radius * (fastPow(s, 1/n) - 1)
}

// fastPow is the exponentiation helper used by the superellipse corner math.
// It dodges the general power function for the common exponents and clamps
// adversarial inputs so no NaN or Inf can escape into the transfer stage:
//
//   - n == 0 returns 1, including 0^0 == 1 by convention
//   - x <= 0 otherwise returns 0 (the corner math never produces negative
//     bases; this is a safety clamp, not a mathematical identity)
//   - n == 1 returns x, n == 2 returns x*x
//   - otherwise n is clamped to [0, 100] and x to [1e-6, 1e6] before
//     calling math.Pow
func fastPow(x, n float64) float64 {
	switch {
	case x < 0:
		return 0
	case n == 0:
		return 1
	case x == 0:
		return 0
	case n == 1:
		return x
	case n == 2:
		return x * x
	}
	n = clamp(n, 0, 100)
	x = clamp(x, 1e-6, 1e6)
	return math.Pow(x, n)
}

// clampRadius limits a corner radius to the representable range for the
// given half-extents.
func clampRadius(radius float64, half Point) float64 {
	return clamp(radius, 0, half.Min())
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
