package sdr

// EngineOption configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default CPU generation, default cache capacity
//	engine := sdr.NewEngine()
//
//	// Custom generator (dependency injection)
//	engine := sdr.NewEngine(sdr.WithGenerator(gpuGen))
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	capacity  int
	generator Generator
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		capacity:  0, // cache package default
		generator: CPUGenerator{},
	}
}

// WithCapacity sets the per-shard raster cache capacity. Values <= 0 keep
// the default.
func WithCapacity(perShard int) EngineOption {
	return func(o *engineOptions) {
		o.capacity = perShard
	}
}

// WithGenerator sets a custom raster generator for the Engine.
// Use this for dependency injection of the GPU compute path:
//
//	import "github.com/Aemi-Studio/AemiSDR/gpu"
//
//	accel := gpu.NewAccelerator()
//	_ = accel.Init() // CPU fallback stays active on failure
//	engine := sdr.NewEngine(sdr.WithGenerator(accel))
//
// A nil generator keeps the CPU default.
func WithGenerator(g Generator) EngineOption {
	return func(o *engineOptions) {
		if g != nil {
			o.generator = g
		}
	}
}
