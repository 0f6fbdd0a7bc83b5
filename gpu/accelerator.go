// Package gpu provides a wgpu compute-shader implementation of the mask
// kernels. It evaluates the same SDF and transfer math as the CPU reference
// generator, dispatched one invocation per pixel, and reads the result back
// into an sdr.Raster.
//
// The accelerator is strictly optional: any initialization or dispatch
// failure falls back to CPU generation, so hosts can wire it
// unconditionally:
//
//	accel := gpu.NewAccelerator()
//	if err := accel.Init(); err != nil {
//	    // CPU fallback stays active; no action needed
//	}
//	defer accel.Close()
//	engine := sdr.NewEngine(sdr.WithGenerator(accel))
package gpu

import (
	"fmt"
	"sync"
	"time"

	sdr "github.com/Aemi-Studio/AemiSDR"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// gpuFenceTimeout bounds the wait for a compute dispatch. Mask rasters are
// small; a dispatch that takes longer than this is stuck.
const gpuFenceTimeout = 5 * time.Second

// Accelerator generates mask rasters on the GPU. It implements
// sdr.Generator and is safe for concurrent use; dispatches are serialized
// on an internal mutex since they share one queue and pipeline.
type Accelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	cpu            sdr.CPUGenerator
	gpuReady       bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// Compile-time interface check.
var _ sdr.Generator = (*Accelerator)(nil)

// NewAccelerator returns an uninitialized accelerator. Until Init (or
// UseSharedDevice) succeeds, Generate transparently uses the CPU generator.
func NewAccelerator() *Accelerator {
	return &Accelerator{}
}

// Init creates the GPU instance, device, and compute pipeline. A failure
// leaves the CPU fallback active and is reported but not fatal.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		sdr.Logger().Warn("gpu: init failed, using CPU fallback", "error", err)
		return err
	}
	return nil
}

// Close releases all GPU resources. Safe to call multiple times.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyPipeline()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.instance = nil
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// Generate implements sdr.Generator. It dispatches the mask kernel on the
// GPU when one is ready and falls back to the CPU reference generator
// otherwise, so results are always produced when the geometry is valid.
func (a *Accelerator) Generate(cfg sdr.Config) (*sdr.Raster, error) {
	key := cfg.Key()
	if key.PixelWidth <= 0 || key.PixelHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", sdr.ErrInvalidDimensions, key.PixelWidth, key.PixelHeight)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return a.cpu.Generate(cfg)
	}
	r, err := a.dispatch(cfg, key)
	if err != nil {
		sdr.Logger().Warn("gpu: dispatch failed, falling back to CPU", "error", err)
		return a.cpu.Generate(cfg)
	}
	return r, nil
}

// dispatch runs one compute pass for the configuration and reads the alpha
// buffer back. The caller holds the mutex.
func (a *Accelerator) dispatch(cfg sdr.Config, key sdr.RasterKey) (*sdr.Raster, error) {
	w, h := uint32(key.PixelWidth), uint32(key.PixelHeight) //nolint:gosec // dimensions validated positive
	pixelBufSize := uint64(w) * uint64(h) * 4

	paramsBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mask_params", Size: kernelParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create params buffer: %w", err)
	}
	defer a.device.DestroyBuffer(paramsBuf)

	storageBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mask_alphas", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage buffer: %w", err)
	}
	defer a.device.DestroyBuffer(storageBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mask_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	a.queue.WriteBuffer(paramsBuf, 0, packKernelParams(cfg))

	bindGroup, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "mask_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: kernelParamsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bindGroup)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "mask_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("mask_generate"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	computePass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "mask_pass"})
	computePass.SetPipeline(a.pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.Dispatch((w+7)/8, (h+7)/8, 1)
	computePass.End()

	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, gpuFenceTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	return sdr.NewRaster(key.PixelWidth, key.PixelHeight, key.Scale,
		unpackAlphas(readback, key.PixelWidth*key.PixelHeight))
}

func (a *Accelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipeline(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipeline: %w", err)
	}
	a.gpuReady = true
	sdr.Logger().Info("gpu: mask accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *Accelerator) createPipeline() error {
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "mask_kernel",
		Source: hal.ShaderSource{WGSL: maskKernelWGSL},
	})
	if err != nil {
		return fmt.Errorf("compile mask kernel: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "mask_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "mask_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "mask_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline

	return nil
}

func (a *Accelerator) destroyPipeline() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}
