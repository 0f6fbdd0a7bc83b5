package sdr

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Raster is an immutable single-channel alpha buffer produced by the
// generator. Values range from 0 (fully transparent) to 255 (fully opaque).
// Once produced a Raster is never mutated, only replaced; ownership
// transfers to the cache on insertion and all callers read the same
// instance.
type Raster struct {
	width  int
	height int
	scale  float64
	data   []uint8
}

// newRaster wraps a generated pixel buffer. The buffer must not be retained
// by the caller afterwards.
func newRaster(width, height int, scale float64, data []uint8) *Raster {
	return &Raster{width: width, height: height, scale: scale, data: data}
}

// NewRaster constructs a Raster from a pixel buffer, one byte per pixel laid
// out row by row. It exists for alternate Generator implementations (such as
// the gpu package); the buffer is copied so the raster stays immutable.
func NewRaster(width, height int, scale float64, data []uint8) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: buffer length %d for %dx%d", ErrInvalidDimensions, len(data), width, height)
	}
	if scale <= 0 {
		scale = 1
	}
	buf := make([]uint8, len(data))
	copy(buf, data)
	return newRaster(width, height, scale, buf), nil
}

// Width returns the raster width in device pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in device pixels.
func (r *Raster) Height() int { return r.height }

// Scale returns the device pixel scale the raster was generated at.
func (r *Raster) Scale() float64 { return r.scale }

// Bounds returns the raster dimensions as an image.Rectangle.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// At returns the alpha value at (x, y).
// Returns 0 for coordinates outside the raster bounds.
func (r *Raster) At(x, y int) uint8 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0
	}
	return r.data[y*r.width+x]
}

// Data returns a copy of the underlying pixel buffer, laid out row by row.
// The copy keeps the raster immutable while giving collaborators a buffer
// they may hand to a GPU upload or compositor.
func (r *Raster) Data() []uint8 {
	out := make([]uint8, len(r.data))
	copy(out, r.data)
	return out
}

// ToImage returns the raster as an *image.Alpha. The pixel data is copied.
func (r *Raster) ToImage() *image.Alpha {
	img := image.NewAlpha(r.Bounds())
	copy(img.Pix, r.data)
	return img
}

// Rescale resamples the raster to a different device pixel scale using
// bilinear interpolation. Returns the receiver when the scale already
// matches or is non-positive. The result is a new Raster; the receiver is
// untouched.
func (r *Raster) Rescale(scale float64) *Raster {
	if scale <= 0 || scale == r.scale {
		return r
	}
	w := int(math.Round(float64(r.width) / r.scale * scale))
	h := int(math.Round(float64(r.height) / r.scale * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), r.ToImage(), r.Bounds(), draw.Src, nil)
	return &Raster{width: w, height: h, scale: scale, data: dst.Pix}
}
