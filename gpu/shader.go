package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// CompileKernelToSPIRV compiles the mask kernel WGSL source to a SPIR-V
// uint32 slice, for hosts whose compute environment consumes SPIR-V rather
// than WGSL.
func CompileKernelToSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(maskKernelWGSL)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile mask kernel: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
