package sdr

import (
	"errors"
	"image"
	"testing"
)

func TestNewRasterValidation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		dataLen       int
	}{
		{"zero width", 0, 10, 0},
		{"zero height", 10, 0, 0},
		{"negative width", -5, 10, 50},
		{"short buffer", 4, 4, 15},
		{"long buffer", 4, 4, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRaster(tt.width, tt.height, 1, make([]uint8, tt.dataLen))
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("error = %v, want ErrInvalidDimensions", err)
			}
			if r != nil {
				t.Errorf("raster = %v, want nil", r)
			}
		})
	}
}

func TestNewRasterCopiesBuffer(t *testing.T) {
	buf := []uint8{1, 2, 3, 4}
	r, err := NewRaster(2, 2, 1, buf)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	buf[0] = 99
	if got := r.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %d after mutating source buffer, want 1", got)
	}
}

func TestNewRasterScaleDefault(t *testing.T) {
	r, err := NewRaster(2, 2, 0, make([]uint8, 4))
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	if got := r.Scale(); got != 1 {
		t.Errorf("Scale() = %f, want 1", got)
	}
}

func TestRasterAt(t *testing.T) {
	r, err := NewRaster(3, 2, 1, []uint8{10, 20, 30, 40, 50, 60})
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 10},
		{2, 0, 30},
		{0, 1, 40},
		{2, 1, 60},
		{-1, 0, 0},
		{3, 0, 0},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := r.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRasterDataIsCopy(t *testing.T) {
	r, err := NewRaster(2, 2, 1, []uint8{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	d := r.Data()
	d[0] = 200
	if got := r.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %d after mutating Data() copy, want 1", got)
	}
}

func TestRasterToImage(t *testing.T) {
	r, err := NewRaster(3, 2, 1, []uint8{10, 20, 30, 40, 50, 60})
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	img := r.ToImage()
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v, want (0,0)-(3,2)", img.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := img.AlphaAt(x, y).A; got != r.At(x, y) {
				t.Errorf("image alpha at (%d, %d) = %d, want %d", x, y, got, r.At(x, y))
			}
		}
	}
	img.Pix[0] = 200
	if got := r.At(0, 0); got != 10 {
		t.Errorf("At(0,0) = %d after mutating image, want 10", got)
	}
}

func TestRasterRescale(t *testing.T) {
	data := make([]uint8, 100*100)
	for i := range data {
		data[i] = 128
	}
	r, err := NewRaster(100, 100, 1, data)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}

	up := r.Rescale(2)
	if up.Width() != 200 || up.Height() != 200 {
		t.Errorf("upscaled size = %dx%d, want 200x200", up.Width(), up.Height())
	}
	if up.Scale() != 2 {
		t.Errorf("upscaled Scale() = %f, want 2", up.Scale())
	}
	// A uniform raster stays uniform through bilinear resampling.
	if got := up.At(100, 100); got != 128 {
		t.Errorf("upscaled At(100,100) = %d, want 128", got)
	}

	if same := r.Rescale(1); same != r {
		t.Error("Rescale to the same scale did not return the receiver")
	}
	if same := r.Rescale(0); same != r {
		t.Error("Rescale to a non-positive scale did not return the receiver")
	}
	if r.Width() != 100 || r.At(0, 0) != 128 {
		t.Error("receiver mutated by Rescale")
	}
}
