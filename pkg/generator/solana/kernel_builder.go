//go:build opencl
// +build opencl

package solana

import (
	_ "embed"
)

//go:embed kernels/solana_vanity.cl
var solanaVanityKernel string

// kernelName is the entry point of the search kernel. Its signature
// fixes the wire format: (result u64, root 32 bytes, min ranges R*32,
// max ranges R*32, R).
const kernelName = "svanity_search"

// KernelSource returns the OpenCL source of the search kernel.
func KernelSource() string {
	return solanaVanityKernel
}
