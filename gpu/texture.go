package gpu

import (
	"fmt"

	sdr "github.com/Aemi-Studio/AemiSDR"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// UploadMask copies a generated raster into a new single-channel R8Unorm
// GPU texture, ready for sampling as a blur-intensity weighting field.
// The caller owns the returned texture and must destroy it on the same
// device.
func UploadMask(device hal.Device, queue hal.Queue, r *sdr.Raster) (hal.Texture, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: nil device or queue")
	}
	if r == nil || r.Width() <= 0 || r.Height() <= 0 {
		return nil, fmt.Errorf("gpu: %w", sdr.ErrInvalidDimensions)
	}

	w, h := uint32(r.Width()), uint32(r.Height()) //nolint:gosec // raster dimensions always fit uint32
	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "mask_texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create mask texture: %w", err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		r.Data(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w, // one byte per pixel
			RowsPerImage: h,
		},
		&size,
	)
	return tex, nil
}
