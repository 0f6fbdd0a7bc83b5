package gpu

import (
	"fmt"

	sdr "github.com/Aemi-Studio/AemiSDR"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// Hosts that already run a gogpu-based frame loop implement DeviceHandle
// (it is an alias for gpucontext.DeviceProvider) and hand it to
// UseSharedDevice, so mask generation shares the application's GPU device
// instead of opening a second one.
type DeviceHandle = gpucontext.DeviceProvider

// UseSharedDevice switches the accelerator to a shared GPU device from the
// host. The provider must additionally expose the underlying HAL handles
// via HalDevice() any and HalQueue() any; providers backed by gogpu do.
//
// Resources created by a previous Init are destroyed. The shared device is
// never destroyed on Close — the host owns it.
func (a *Accelerator) UseSharedDevice(provider DeviceHandle) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := any(provider).(halProvider)
	if !ok {
		return fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Destroy own resources if we created them.
	a.destroyPipeline()
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipeline(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("gpu: create pipeline with shared device: %w", err)
	}
	a.gpuReady = true
	sdr.Logger().Info("gpu: switched to shared GPU device")
	return nil
}
