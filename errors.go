package sdr

import "errors"

// Package errors for mask generation.
var (
	// ErrInvalidDimensions is returned when the pixel width or height of a
	// requested raster is not positive. No buffer is generated; any
	// previously cached raster for the slot stays in place.
	ErrInvalidDimensions = errors.New("sdr: invalid raster dimensions")

	// ErrUnknownKind is returned when a Config carries a MaskKind outside
	// the closed enumeration.
	ErrUnknownKind = errors.New("sdr: unknown mask kind")
)
